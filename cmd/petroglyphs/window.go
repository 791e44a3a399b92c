package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/petroglyphs/internal/platform/window"
)

var windowFlags sessionFlags

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play a campaign in a desktop window",
	Long: `Play a campaign in a desktop window. The window uses the same
controls as the terminal and keeps real key-up events, so walking stops
as soon as a key is released.

Examples:
  petroglyphs window
  petroglyphs window --continue
  petroglyphs window --campaign chillihuay --level 2`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowFlags.register(windowCmd)
}

func runWindow(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	session, err := windowFlags.prepare(logger)
	if err != nil {
		exitErr("cannot start game", err)
	}

	runErr := window.Run(window.Options{
		Campaign:   session.campaign,
		Quest:      session.quest,
		TickRate:   flagFPS,
		Profile:    flagProfile,
		StartLevel: session.startLevel,
		Store:      session.store,
		Logger:     logger,
	})
	session.Close()

	if runErr != nil {
		exitErr("running game", runErr)
	}
}
