package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-menu/agent"
	"github.com/odvcencio/furry-menu/backend/sim"
	"github.com/odvcencio/furry-menu/contextmenu"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/terminal"
)

// menuMarker is an item title that only appears while the menu is open.
const menuMarker = "Delete"

// tap forwards to a controller and copies every show request to a channel.
type tap struct {
	next     contextmenu.Controller
	requests chan contextmenu.ShowRequest
}

func (t *tap) ShowMenu(req contextmenu.ShowRequest) {
	t.next.ShowMenu(req)
	select {
	case t.requests <- req:
	default:
	}
}

func (t *tap) HideMenu() {
	t.next.HideMenu()
}

func newReplayCmd(g *globals) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play a scripted session on a simulated screen and print what happened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				width = g.cfg.Replay.Width
			}
			if height <= 0 {
				height = g.cfg.Replay.Height
			}
			return replay(cmd.Context(), g, cmd.OutOrStdout(), width, height)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "screen width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "screen height (default from config)")
	return cmd
}

func replay(ctx context.Context, g *globals, out io.Writer, width, height int) error {
	be := sim.New(width, height)
	app := runtime.NewApp(runtime.AppConfig{
		Backend:       be,
		Update:        update,
		MessageBuffer: g.cfg.App.MessageBuffer,
		Logger:        g.logger,
	})
	taps := &tap{requests: make(chan contextmenu.ShowRequest, 8)}
	d, err := newDemo(app, g.cfg, g.logger, func(next contextmenu.Controller) contextmenu.Controller {
		taps.next = next
		return taps
	})
	if err != nil {
		return err
	}

	hold := g.cfg.Trigger(fileMenu).HoldToDisplay
	agt := agent.New(agent.Config{App: app, Sim: be, Timeout: max(time.Second, 3*hold)})
	if err := agt.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = agt.Stop() }()
	if err := agt.Do(d.mount); err != nil {
		return err
	}
	if err := agt.WaitForText("README.md"); err != nil {
		return err
	}

	s := &script{agt: agt, out: out, requests: taps.requests, timeout: max(time.Second, 3*hold)}
	s.step("right-click go.mod", func() error {
		x, y := agt.FindText("go.mod")
		agt.RightClick(x, y, false)
		return s.expectShow()
	})
	s.step("choose Copy path", func() error {
		return s.choose("Copy path")
	})
	if hold >= 0 {
		s.step("hold main.go", func() error {
			x, y := agt.FindText("main.go")
			agt.Press(x, y, terminal.MouseLeft)
			err := s.expectShow()
			agt.Release(x, y)
			return err
		})
		s.step("escape", func() error {
			agt.Key(tcell.KeyEscape, 0)
			return agt.WaitForNoText(menuMarker)
		})
		s.step("long-press notes.txt", func() error {
			x, y := agt.FindText("notes.txt")
			if err := agt.Touch(terminal.TouchStart, terminal.TouchPoint{PageX: x, PageY: y}); err != nil {
				return err
			}
			err := s.expectShow()
			if err := agt.Touch(terminal.TouchEnd); err != nil {
				return err
			}
			return err
		})
		s.step("choose Rename", func() error {
			return s.choose("Rename")
		})
	}
	return s.err
}

// script runs replay steps until one fails.
type script struct {
	agt      *agent.Agent
	out      io.Writer
	requests <-chan contextmenu.ShowRequest
	timeout  time.Duration
	err      error
}

func (s *script) step(name string, fn func() error) {
	if s.err != nil {
		return
	}
	fmt.Fprintf(s.out, "> %s\n", name)
	if err := fn(); err != nil {
		s.err = fmt.Errorf("%s: %w", name, err)
	}
}

func (s *script) expectShow() error {
	select {
	case req := <-s.requests:
		name, _ := req.Payload["name"].(string)
		fmt.Fprintf(s.out, "show %s at (%d,%d) for %s id=%s\n", req.MenuID, req.Position.X, req.Position.Y, name, req.ID)
		return s.agt.WaitForText(menuMarker)
	case <-time.After(s.timeout):
		return agent.ErrTimeout
	}
}

func (s *script) choose(title string) error {
	x, y := s.agt.FindText(title)
	if x < 0 {
		return fmt.Errorf("menu item %q not on screen", title)
	}
	s.agt.Click(x, y)
	if err := s.agt.WaitForText(title + ":"); err != nil {
		return err
	}
	_, row := s.agt.FindText(title + ":")
	fmt.Fprintf(s.out, "status %s\n", lineAt(s.agt.CaptureText(), row))
	return nil
}

func lineAt(text string, row int) string {
	lines := strings.Split(text, "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[row])
}
