package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/platform/tui"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

var flagMuseumCampaign string

var museumCmd = &cobra.Command{
	Use:   "museum",
	Short: "Show unlocked museum entries",
	Long: `Display the petroglyph entries the profile has unlocked in a campaign.
Locked entries are listed without their title.

Examples:
  petroglyphs museum
  petroglyphs museum --profile ssh:ana
  petroglyphs museum --levels ./campaigns --campaign my-trail`,
	Args: cobra.NoArgs,
	Run:  runMuseum,
}

func init() {
	museumCmd.Flags().StringVar(&flagMuseumCampaign, "campaign", levels.DefaultCampaign, "Campaign ID")
}

func runMuseum(_ *cobra.Command, _ []string) {
	campaign, err := levels.Resolve(flagMuseumCampaign, flagLevelsDir)
	if err != nil {
		exitErr("cannot load campaign", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening museum database", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model, err := tui.NewCollectionModel(store, campaign, flagProfile, width, height)
	if err != nil {
		store.Close()
		exitErr("reading museum entries", err)
	}

	runErr := tui.RunCollection(model)
	store.Close()

	if runErr != nil {
		exitErr("showing museum", runErr)
	}
}
