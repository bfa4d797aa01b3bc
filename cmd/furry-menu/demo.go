package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/config"
	"github.com/odvcencio/furry-menu/contextmenu"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/state"
	"github.com/odvcencio/furry-menu/terminal"
	"github.com/odvcencio/furry-menu/widgets"
)

const fileMenu = "file"

var demoFiles = []string{"README.md", "go.mod", "main.go", "notes.txt"}

// demo is a file list whose rows open a shared context menu.
type demo struct {
	root   *widgets.Column
	host   *contextmenu.MenuHost
	store  *contextmenu.Store
	status *state.Signal[string]
}

// newDemo builds the widget tree. wrap lets callers observe requests on
// their way to the store.
func newDemo(app *runtime.App, cfg *config.Config, logger *zap.Logger, wrap func(contextmenu.Controller) contextmenu.Controller) (*demo, error) {
	d := &demo{
		store:  contextmenu.NewStore(logger),
		status: state.NewSignal("Hold a row, right-click it, or long-press it."),
	}
	d.status.SetEqualFunc(state.EqualComparable[string])

	var controller contextmenu.Controller = d.store
	if wrap != nil {
		controller = wrap(controller)
	}

	children := []runtime.Widget{widgets.NewLabel("Files")}
	for _, name := range demoFiles {
		tcfg := cfg.Trigger(fileMenu)
		tcfg.Controller = controller
		tcfg.Logger = logger
		tcfg.Collect = func(ctx context.Context) (contextmenu.Payload, error) {
			return contextmenu.Payload{"name": name}, nil
		}
		trigger, err := contextmenu.New(tcfg, widgets.NewLabel("  "+name))
		if err != nil {
			return nil, fmt.Errorf("trigger %s: %w", name, err)
		}
		children = append(children, trigger)
	}
	children = append(children, widgets.NewLabel(""), widgets.NewSignalLabel(d.status, app.Services().Scheduler()))
	d.root = widgets.NewColumn(children...)

	d.host = contextmenu.NewMenuHost(d.store, fileMenu,
		&widgets.MenuItem{ID: "open", Title: "Open", Shortcut: "o"},
		&widgets.MenuItem{ID: "rename", Title: "Rename", Shortcut: "r"},
		&widgets.MenuItem{ID: "copy-path", Title: "Copy path"},
		&widgets.MenuItem{ID: "delete", Title: "Delete", Disabled: true},
	)
	d.host.SetOnSelect(func(item *widgets.MenuItem, req contextmenu.ShowRequest) {
		name, _ := req.Payload["name"].(string)
		d.status.Set(fmt.Sprintf("%s: %s", item.Title, name))
		logger.Info("menu item selected", zap.String("item", item.ID), zap.String("file", name))
	})
	return d, nil
}

// mount installs the tree and the menu overlay. It runs on the event loop.
func (d *demo) mount(screen *runtime.Screen) {
	screen.SetRoot(d.root)
	screen.PushLayer(d.host, false)
}

// update quits on q and Ctrl+C and otherwise defers to the default loop.
func update(app *runtime.App, msg runtime.Message) bool {
	if key, ok := msg.(runtime.KeyMsg); ok {
		if key.Key == terminal.KeyCtrlC || (key.Key == terminal.KeyRune && key.Rune == 'q') {
			app.ExecuteCommand(runtime.Quit{})
			return false
		}
	}
	if failed, ok := msg.(contextmenu.CollectFailedMsg); ok {
		app.Logger().Warn("menu not shown", zap.String("menu", failed.MenuID), zap.Error(failed.Err))
		return false
	}
	return runtime.DefaultUpdate(app, msg)
}
