package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tax-engine/internal/config"
	"tax-engine/internal/deadlines"
	"tax-engine/internal/engine"
	"tax-engine/internal/logger"
	"tax-engine/internal/reference"
	"tax-engine/internal/regime"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	engine  *engine.Engine
	content *reference.Content
	tracker *deadlines.Tracker
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var (
		debug   bool
		envFile string
		a       = &app{}
	)

	cmd := &cobra.Command{
		Use:          "tax-engine",
		Short:        "Indian income-tax calculator (New Tax Regime, FY 2025-26)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			a.cfg = cfg
			a.log = logger.Setup(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Out:    cmd.ErrOrStderr(),
			})

			reg, err := regime.Load(cmd.Context(), cfg.RegimeFile)
			if err != nil {
				return err
			}
			a.engine = engine.New(reg)
			a.log.Debug("regime.loaded", "name", reg.Name, "slabs", len(reg.Slabs))

			content, err := reference.Load()
			if err != nil {
				return err
			}
			a.content = content
			a.tracker = deadlines.NewTracker(content.Deadlines(), cfg.Timezone)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file (default .env if present)")

	cmd.AddCommand(
		newServeCmd(a),
		newCalcCmd(a),
		newCompareCmd(a),
		newSlabsCmd(a),
		newDeadlinesCmd(a),
		newReferenceCmd(a),
	)
	return cmd
}
