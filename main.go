package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/milk9111/mrexhibit/config"
	"github.com/milk9111/mrexhibit/operator"
)

var (
	cfg     *config.Config
	logger  *zap.Logger
	console *operator.Console
)

var rootCmd = &cobra.Command{
	Use:   "mrexhibit",
	Short: "Interactive exhibit of animals and plants placed around an anchor",
	Long: `Browse a catalog of animals and plants around a placed anchor. Tap an
exhibit to bring it forward, read about it and play its animations.

Settings come from flags, MREXHIBIT_* environment variables and an optional
YAML file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if cfg.Debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		console = operator.NewConsole(cfg.Operator.MaxLogs)
		logger, err = zcfg.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, console.Core(zcfg.Level))
		}))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func run() error {
	app, err := NewApp(cfg, logger, console)
	if err != nil {
		return err
	}
	defer app.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	start := time.Now()
	err = ebiten.RunGame(NewGame(app))
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	logger.Info("exhibit closed", zap.Duration("uptime", time.Since(start)))
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
