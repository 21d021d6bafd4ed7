// Command elimination solves grid logic puzzles described in YAML.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/elimination/internal/config"
	"github.com/gitrdm/elimination/internal/render"
	"github.com/gitrdm/elimination/pkg/elimination"
)

var version = "dev"

// app is shared by every subcommand. PersistentPreRunE fills it before
// a subcommand runs.
type app struct {
	cfg    config.Config
	logger *logrus.Logger
	trace  *io.PipeWriter
}

func main() {
	a := &app{logger: logrus.New()}
	if err := newRootCmd(a).Execute(); err != nil {
		a.logger.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "elimination",
		Short:         "Solve grid logic puzzles by constraint propagation",
		Long:          `A tool that applies the rules of a zebra-style puzzle and reports what propagation alone can deduce.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger.SetOutput(cmd.ErrOrStderr())
			return a.setup(cmd, configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.trace != nil {
				a.trace.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path of a YAML configuration file")
	flags.String("log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
	flags.Bool("trace", false, "log every engine event at debug level")
	flags.String("color", "", "colorize output: auto, always or never")

	rootCmd.AddCommand(
		newSolveCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration file and lets explicitly set flags
// override it.
func (a *app) setup(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("trace") {
		cfg.Trace, _ = flags.GetBool("trace")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("metrics-file") != nil && flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Lookup("debounce") != nil && flags.Changed("debounce") {
		cfg.Debounce, _ = flags.GetDuration("debounce")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	a.logger.SetLevel(level)
	a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cfg.Trace && a.logger.IsLevelEnabled(logrus.DebugLevel) {
		a.trace = a.logger.WriterLevel(logrus.DebugLevel)
	}
	a.cfg = cfg
	a.logger.WithField("config", configPath).Debug("settings loaded")
	return nil
}

// options returns the solver options implied by the settings.
func (a *app) options() []elimination.Option {
	if a.trace == nil {
		return nil
	}
	return []elimination.Option{elimination.WithTracer(elimination.LoggingTracer{Writer: a.trace})}
}

func (a *app) styles(w io.Writer) render.Styles {
	return render.NewStyles(render.UseColor(a.cfg.Color, w))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "elimination "+version)
		},
	}
}
