package main

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/month-grid/internal/config"
	"github.com/username/month-grid/internal/monthgrid"
	"github.com/username/month-grid/internal/render"
)

// app holds the state shared by the commands of one root command
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	now        func() time.Time
}

func main() {
	if err := newRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	a := &app{logger: zap.NewNop(), now: now}

	rootCmd := &cobra.Command{
		Use:           "month-grid",
		Short:         "Month grid calculator",
		Long:          "Lay out a calendar month as ISO weeks and highlight the week before the reference date",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg

			if cfg.Log.File != "" {
				a.logger = initFileLogger(cfg.Log.File, cfg.Log.GetLevel())
				return nil
			}
			a.logger, err = initLogger(cfg.Log.GetLevel())
			return err
		},
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default: search config.yaml)")

	rootCmd.AddCommand(gridCmd(a))
	rootCmd.AddCommand(infoCmd(a))

	return rootCmd
}

func gridCmd(a *app) *cobra.Command {
	var format string
	var timezone string

	cmd := &cobra.Command{
		Use:   "grid [date]",
		Short: "Print the week grid of the month containing date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.OutOrStdout(), args, format, timezone, true)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	cmd.Flags().StringVar(&timezone, "tz", "", "Time zone used to resolve the date (default from config)")

	return cmd
}

func infoCmd(a *app) *cobra.Command {
	var format string
	var timezone string

	cmd := &cobra.Command{
		Use:   "info [date]",
		Short: "Print day, weekday, first week and month lengths for date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.OutOrStdout(), args, format, timezone, false)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	cmd.Flags().StringVar(&timezone, "tz", "", "Time zone used to resolve the date (default from config)")

	return cmd
}

func (a *app) run(out io.Writer, args []string, format, timezone string, withGrid bool) (err error) {
	defer func() {
		if err != nil {
			a.logger.Error("Month grid failed", zap.Strings("args", args), zap.Error(err))
		}
		_ = a.logger.Sync()
	}()

	grid := a.cfg.Grid
	if len(args) == 1 {
		grid.ReferenceDate = args[0]
	}
	if timezone != "" {
		grid.Timezone = timezone
	}
	if format == "" {
		format = a.cfg.Output.Format
	}
	if err := config.ValidateFormat(format); err != nil {
		return fmt.Errorf("invalid --format: %w", err)
	}

	ref, err := grid.GetReferenceDate(a.now())
	if err != nil {
		return fmt.Errorf("failed to resolve reference date: %w", err)
	}

	calc := monthgrid.New(ref)
	a.logger.Debug("Computing month grid",
		zap.Time("reference", ref),
		zap.String("format", format),
		zap.Bool("with_grid", withGrid))

	report := render.NewReport(calc, withGrid)
	if err := render.Write(out, format, report); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	a.logger.Info("Month grid rendered",
		zap.String("reference", report.Reference),
		zap.Int("first_week", report.FirstWeek),
		zap.Int("weeks", len(report.Weeks)))

	return nil
}

func initLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func initFileLogger(logFile string, level zapcore.Level) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)

	return zap.New(core)
}
