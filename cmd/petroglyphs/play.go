package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/platform/tui"
)

var (
	playFlags     sessionFlags
	flagPlayWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a campaign in the terminal",
	Long: `Start playing a campaign in the terminal.

Controls:
  A/D, Left/Right  - Walk
  W, Up, Space     - Jump
  Enter            - Start / next level / retry
  P/Esc            - Pause
  R                - Retry (after game over)
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Logs are written to ~/.petroglyphs/petroglyphs.log.

Examples:
  petroglyphs play
  petroglyphs play --continue
  petroglyphs play --level 3
  petroglyphs play --levels ./campaigns --campaign my-trail --watch
  petroglyphs play --config ./my-quest.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playFlags.register(playCmd)
	playCmd.Flags().BoolVar(&flagPlayWatch, "watch", false, "Reload campaign files from --levels when they change")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closer := fileLogger()
	defer closer.Close()

	session, err := playFlags.prepare(logger)
	if err != nil {
		exitErr("cannot start game", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Campaign: session.campaign,
		Quest:    session.quest,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		Profile:    flagProfile,
		StartLevel: session.startLevel,
		Store:      session.store,
		Logger:     logger,
		LevelsRoot: flagLevelsDir,
	}

	if flagPlayWatch {
		if flagLevelsDir == "" {
			logger.Warn("--watch needs --levels; built-in campaigns are not watched")
		} else {
			watcher, werr := levels.NewWatcher(flagLevelsDir)
			if werr != nil {
				session.Close()
				exitErr("cannot watch campaign files", werr)
			}
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	runErr := tui.Run(opts)
	session.Close()

	if runErr != nil {
		exitErr("running game", runErr)
	}
}
