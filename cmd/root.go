package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/suggest/internal/config"
	"github.com/oakwood-commons/suggest/internal/limiter"
	"github.com/oakwood-commons/suggest/internal/ui"
	"github.com/oakwood-commons/suggest/pkg/logger"
	"github.com/oakwood-commons/suggest/pkg/settings"
)

// errCancelled is returned when the form was closed without submitting.
var errCancelled = errors.New("cancelled")

var (
	suggestionFlags []string
	initialValue    string
	fieldLabel      string
	whereExpr       string
	inputFormat     string
	matchMode       string
	output          string // for rootCmd (default: text)
	configOutput    string // for configCmd (default: yaml)
	themeName       string
	configFile      string
	debug           bool
	noColor         bool
	logFile         string
	debounce        time.Duration
	renderSnapshot  bool
	startKeys       []string
	snapshotWidth   int
	snapshotHeight  int
	limitRecords    int
	offsetRecords   int
	tailRecords     int
)

var (
	rootCtx  = context.Background()
	closeLog = func() {}
)

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var rootCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "suggest - text input with a suggestion panel",
	Long: `suggest runs a text field that offers suggestions from a catalogue while
you type. Arrow keys move through the panel, Enter picks, Esc closes it.
Every state change is announced in the status line the way a screen reader
would speak it.

The catalogue is a file argument, piped data, or repeated --suggestion flags.
JSON, YAML, NDJSON, TOML, Markdown lists and plain text (one suggestion per
line) are read.
Entries are strings or objects with "value" and "label".`,
	Example: "\n  suggest states.yaml\n  suggest -s red -s green -s blue\n  cat cities.json | suggest --where '_.label.startsWith(\"San\")'\n  suggest states.yaml --snapshot --press '<Down><Down>'\n",
	Args:          cobra.MaximumNArgs(1),
	Version:       settings.VersionInformation.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		run := settings.NewCliParams()
		run.NoColor = noColor
		run.LogFile = logFile
		if debug {
			run.MinLogLevel = -1
		}
		if cmd.Flags().Changed("debounce") {
			run.Debounce = debounce
		}

		var sinks []zapcore.WriteSyncer
		switch {
		case logFile != "":
			sink, closeFn, err := logger.OpenFile(logFile)
			if err != nil {
				return err
			}
			sinks = append(sinks, sink)
			closeLog = closeFn
		case !cmd.HasParent() && !renderSnapshot:
			// The form owns the terminal.
			sinks = append(sinks, logger.Discard())
		}
		lgr := logger.Get(run.MinLogLevel, sinks...)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		run := settings.FromContextOrDefault(rootCtx)
		lgr := logger.FromContext(rootCtx)

		limitCfg := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
		if err := limitCfg.Validate(); err != nil {
			return fmt.Errorf("record limiting: %w", err)
		}
		if err := validateOutput(output); err != nil {
			return err
		}

		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		if err := applyCLIOverrides(&cfg, cmd); err != nil {
			return err
		}

		items, err := loadCatalogue(args, run)
		if errors.Is(err, errNoCatalogue) {
			return cmd.Help()
		}
		if err != nil {
			return err
		}
		total := len(items)
		if items, err = filterCatalogue(items, whereExpr, limitCfg); err != nil {
			return err
		}
		lgr.V(1).Info("catalogue loaded", "total", total, "kept", len(items), "source", run.Source.Name())

		opts := ui.Options{
			AppName: cfg.App.Name,
			Config:  cfg,
			NoColor: run.NoColor,
			Debug:   debug,
			Logger:  *lgr,
			Width:   snapshotWidth,
			Height:  snapshotHeight,
			Fields: []ui.FieldSpec{{
				ID:        "value",
				Label:     fieldLabel,
				Value:     initialValue,
				Catalogue: items,
			}},
		}
		if cmd.Flags().Changed("debounce") {
			opts.Debounce = &run.Debounce
		}

		if renderSnapshot {
			return renderSnapshotOutput(cmd, opts)
		}

		ttyOpts, cleanup := getProgramOptions()
		defer cleanup()
		debugSink := func(msg string) { lgr.Info(msg, "source", "debug") }
		res, err := ui.RunModel(opts, startKeys, debugSink, ttyOpts...)
		if err != nil {
			return err
		}
		if !res.Submitted {
			return errCancelled
		}
		return printResult(cmd.OutOrStdout(), res, output)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print suggest version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

// configCmd prints the merged configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	Long:  "Print the built-in configuration with the user config file merged on top.\nThe output is a valid config file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigView(cmd.OutOrStdout())
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runThemesList(cmd.OutOrStdout())
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.SetVersionTemplate(cliVersionString() + "\n")

	rootCmd.Flags().StringArrayVarP(&suggestionFlags, "suggestion", "s", nil, "add a suggestion (repeatable); appended after file or piped entries")
	rootCmd.Flags().StringVar(&initialValue, "value", "", "initial text of the field")
	rootCmd.Flags().StringVar(&fieldLabel, "label", "", "label shown above the field")
	rootCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "CEL expression that keeps matching suggestions. '_' has value, label and index. Example: '_.label.startsWith(\"A\")'")
	rootCmd.Flags().StringVarP(&inputFormat, "format", "f", "auto", "catalogue format: auto|json|yaml|ndjson|toml|lines|markdown")
	rootCmd.Flags().StringVarP(&matchMode, "match", "m", "", "live filtering by typed text: prefix|contains|none (default from config)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "text", "result format: text|json|yaml|toml")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "keep at most N suggestions")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N suggestions")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "keep the last N suggestions (mutually exclusive with --limit; ignores --offset)")
	rootCmd.Flags().DurationVar(&debounce, "debounce", 0, "delay before the panel refreshes after focus or typing (default from config)")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit (dev/test); honors --width/--height")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <Down>, <CR>, <Esc>, <Tab>, <C-n>). Literal text types normally")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "layout width in columns (default: terminal width)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "layout height in rows (default: terminal height)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "show the debug bar and log at debug level")

	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "theme name (default from config; see 'suggest themes')")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append JSON logs to this file instead of stderr")

	rootCmd.AddCommand(versionCmd)
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themesCmd)
}

// Execute runs the root command and flushes the logger.
func Execute() error {
	err := rootCmd.Execute()
	logger.Sync()
	closeLog()
	closeLog = func() {}
	return err
}

// applyCLIOverrides folds the flags that shadow config values into cfg.
func applyCLIOverrides(cfg *config.File, cmd *cobra.Command) error {
	if m := strings.TrimSpace(matchMode); m != "" {
		switch m {
		case config.MatchPrefix, config.MatchContains, config.MatchNone:
			cfg.UI.Behavior.Match = m
		default:
			return fmt.Errorf("invalid --match %q (use prefix|contains|none)", m)
		}
	}
	if cmd.Flags().Changed("theme") || cmd.InheritedFlags().Changed("theme") {
		if err := selectTheme(cfg, themeName); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("debounce") && debounce < 0 {
		return fmt.Errorf("invalid --debounce %s: must not be negative", debounce)
	}
	return nil
}
