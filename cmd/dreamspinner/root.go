package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dreamspinner/internal/cli"
	"github.com/jmylchreest/dreamspinner/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

const appID = "io.github.jmylchreest.dreamspinner"

var (
	globalOpts struct {
		verbose      bool
		settingsPath string
	}
	logger = slog.Default()
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "dreamspinner [/s[:handle] | /c[:handle] | /p:handle]",
	Short: "Screensaver that spins dreams across every display",
	Long: `dreamspinner is a screensaver that shows one of the selected dreams
on the primary display and, optionally, on every other display.

Without arguments it shows the screensaver. The screensaver switches
are case-insensitive:

  /s, /s:<handle>, /s <handle>   show the screensaver
  /c, /c:<handle>                edit the settings
  /p:<handle>, /p <handle>       show a windowed preview`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("dreamspinner failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.settingsPath, "settings", "",
		"Path to the settings file (default: next to the executable, then ~/.config/dreamspinner/dream_settings.toml)")
}

func run(cmd *cobra.Command, args []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	setupLogger(env)

	parsed, err := cli.ParseArgs(append([]string{cmd.Name()}, args...))
	if err != nil {
		return err
	}
	logger.Debug("parsed command line", "command", parsed.Command.String(), "handle", parsed.Handle)

	path, err := settingsPath(env)
	if err != nil {
		return err
	}
	store := config.NewStore(path, logger)
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch parsed.Command {
	case cli.CommandConfig:
		return runConfig(store)
	case cli.CommandPreview:
		logger.Info("host window embedding is unavailable, showing a preview window", "handle", parsed.Handle)
		return runShow(store, env, true)
	default:
		if parsed.HasHandle() {
			logger.Info("showing for host window", "handle", parsed.Handle)
		}
		return runShow(store, env, false)
	}
}

// settingsPath picks the settings file: environment, then flag, then the
// standard locations.
func settingsPath(env config.Env) (string, error) {
	switch {
	case env.SettingsPath != "":
		return env.SettingsPath, nil
	case globalOpts.settingsPath != "":
		return globalOpts.settingsPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve settings path: %w", err)
	}
	return path, nil
}

// setupLogger configures the global slog logger.
func setupLogger(env config.Env) {
	level := env.Level()
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
