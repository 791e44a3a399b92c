// petroglyphs is a terminal platformer: collect the stone fragments of each
// level to restore the petroglyphs of a campaign to the museum.
//
// Usage:
//
//	petroglyphs play                  - Play a campaign in the terminal
//	petroglyphs window                - Play a campaign in a desktop window
//	petroglyphs serve                 - Start SSH server for remote play
//	petroglyphs levels list           - List available campaigns
//	petroglyphs levels validate <f>   - Validate campaign files
//	petroglyphs museum                - Show unlocked museum entries
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.petroglyphs/museum.db)
//	--log-level <level>  - debug, info, warn or error
//	--profile <name>     - Player profile for museum progress
//	--levels <dir>       - Directory with campaign files
//
// Every global flag can also be set with a PETROGLYPHS_* environment
// variable, e.g. PETROGLYPHS_FPS=30.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/petroglyphs/internal/config"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagLogLevel  string
	flagProfile   string
	flagLevelsDir string

	// runtimeEnv holds the environment settings loaded before every command.
	runtimeEnv config.RuntimeEnv
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "petroglyphs",
	Short: "Petroglyphs - a platformer about restoring rock art",
	Long: `Petroglyphs is a small platformer. Walk and jump across the platforms
of each level, collect every stone fragment and unlock the story of a
petroglyph in the museum.

Available commands:
  play     - Play a campaign in the terminal
  window   - Play a campaign in a desktop window
  serve    - Start SSH server for remote play
  levels   - List or validate campaign files
  museum   - Show unlocked museum entries

Examples:
  petroglyphs play
  petroglyphs play --continue
  petroglyphs play --levels ./campaigns --campaign my-trail --watch
  petroglyphs window --level 2
  petroglyphs serve --ssh :2222
  petroglyphs museum`,
	PersistentPreRunE: loadRuntimeEnv,
	SilenceUsage:      true,
}

func init() {
	defaults := config.DefaultRuntimeEnv()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", defaults.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaults.DBPath, "Path to museum database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaults.Profile, "Player profile for museum progress")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with campaign files (built-in campaigns are always available)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(museumCmd)
}

// loadRuntimeEnv fills every global flag the user did not pass from the
// environment.
func loadRuntimeEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadRuntimeEnv()
	if err != nil {
		return err
	}
	runtimeEnv = env

	flags := cmd.Flags()
	if !flags.Changed("fps") {
		flagFPS = env.FPS
	}
	if !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("log-level") {
		flagLogLevel = env.LogLevel
	}
	if !flags.Changed("profile") {
		flagProfile = env.Profile
	}
	if !flags.Changed("levels") {
		flagLevelsDir = env.Levels
	}

	env.FPS = flagFPS
	if err := env.Validate(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return nil
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "petroglyphs",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.petroglyphs/petroglyphs.log, for commands that own
// the terminal. The returned closer must be called on exit.
func fileLogger() (*log.Logger, io.Closer) {
	dir := config.HomeDir()
	if dir == "" {
		return newLogger(io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), io.NopCloser(nil)
	}

	f, err := os.OpenFile(filepath.Join(dir, "petroglyphs.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), io.NopCloser(nil)
	}
	return newLogger(f), f
}

// exitErr prints an error the way every command reports failures and exits.
func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
