package contextmenu_test

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-menu/agent"
	"github.com/odvcencio/furry-menu/backend/sim"
	"github.com/odvcencio/furry-menu/contextmenu"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/terminal"
	"github.com/odvcencio/furry-menu/widgets"
)

type session struct {
	*agent.Agent
	selected chan string
}

func startSession(t *testing.T) *session {
	t.Helper()
	s := &session{selected: make(chan string, 4)}
	store := contextmenu.NewStore(nil)

	cfg := contextmenu.DefaultConfig()
	cfg.ID = "files"
	cfg.HoldToDisplay = 20 * time.Millisecond
	cfg.Controller = store
	trigger := contextmenu.NewTrigger(cfg, widgets.NewLabel("readme.md"))

	host := contextmenu.NewMenuHost(store, "files",
		&widgets.MenuItem{ID: "open", Title: "Open"},
		&widgets.MenuItem{ID: "copy", Title: "Copy"},
	)
	host.SetOnSelect(func(item *widgets.MenuItem, req contextmenu.ShowRequest) {
		s.selected <- item.ID
	})

	be := sim.New(40, 10)
	app := runtime.NewApp(runtime.AppConfig{Backend: be, Root: trigger})
	s.Agent = agent.New(agent.Config{App: app, Sim: be})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { assert.NoError(t, s.Stop()) })

	require.NoError(t, s.Do(func(screen *runtime.Screen) { screen.PushLayer(host, false) }))
	require.NoError(t, s.WaitForText("readme.md"))
	return s
}

func (s *session) menuShown() bool {
	return s.ContainsText("Open")
}

func TestApp_RightClickThenClickRow(t *testing.T) {
	s := startSession(t)

	s.RightClick(5, 2, false)
	require.NoError(t, s.WaitForText("Open"))

	// Rows start one cell inside the box, which opens at the click.
	s.Click(7, 4)

	select {
	case id := <-s.selected:
		assert.Equal(t, "copy", id)
	case <-time.After(time.Second):
		t.Fatal("no item selected")
	}
	require.NoError(t, s.WaitForNoText("Open"))
}

func TestApp_HoldThenEscape(t *testing.T) {
	s := startSession(t)

	s.Press(3, 1, terminal.MouseLeft)
	require.NoError(t, s.WaitForText("Open"))
	s.Release(3, 1)

	s.Key(tcell.KeyEscape, 0)
	require.NoError(t, s.WaitForNoText("Open"))
	assert.Empty(t, s.selected, "releasing the hold over the menu selects nothing")
}

func TestApp_ShortPressOpensNothing(t *testing.T) {
	s := startSession(t)

	s.Click(3, 1)
	assert.Never(t, s.menuShown, 100*time.Millisecond, 10*time.Millisecond)
}

func TestApp_TouchHoldThenPan(t *testing.T) {
	s := startSession(t)

	require.NoError(t, s.Touch(terminal.TouchStart, terminal.TouchPoint{PageX: 4, PageY: 1}))
	require.NoError(t, s.Touch(terminal.TouchMove, terminal.TouchPoint{PageX: 4, PageY: 3}))
	assert.Never(t, s.menuShown, 100*time.Millisecond, 10*time.Millisecond, "a pan cancels the touch hold")
	require.NoError(t, s.Touch(terminal.TouchEnd))

	require.NoError(t, s.Touch(terminal.TouchStart, terminal.TouchPoint{PageX: 4, PageY: 1}))
	require.NoError(t, s.WaitForText("Open"))
	require.NoError(t, s.Touch(terminal.TouchEnd))
}
