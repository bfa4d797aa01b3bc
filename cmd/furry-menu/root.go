package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/config"
	"github.com/odvcencio/furry-menu/logging"
)

// globals holds what every subcommand needs once flags are parsed.
type globals struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	closer     io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "furry-menu",
		Short:         "Context menus for terminal widgets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			logger, closer, err := logging.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			g.cfg, g.logger, g.closer = cfg, logger, closer
			logger.Info("starting", zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closer == nil {
				return nil
			}
			return g.closer.Close()
		},
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (yaml, toml or json)")
	root.AddCommand(newRunCmd(g), newReplayCmd(g))
	return root
}
