package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-menu/backend/tcellterm"
	"github.com/odvcencio/furry-menu/runtime"
)

func newRunCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive file-list demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			be, err := tcellterm.New()
			if err != nil {
				return fmt.Errorf("terminal backend: %w", err)
			}
			app := runtime.NewApp(runtime.AppConfig{
				Backend:       be,
				Update:        update,
				MessageBuffer: g.cfg.App.MessageBuffer,
				TickRate:      g.cfg.App.TickRate,
				Logger:        g.logger,
			})
			d, err := newDemo(app, g.cfg, g.logger, nil)
			if err != nil {
				return err
			}
			app.Post(runtime.CallbackMsg{Fn: func() { d.mount(app.Screen()) }})

			if err := app.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("run: %w", err)
			}
			return nil
		},
	}
}
