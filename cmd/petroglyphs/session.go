package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/petroglyphs/internal/config"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

// sessionFlags are shared by the commands that play a campaign locally.
type sessionFlags struct {
	campaign string
	level    int
	cont     bool
	config   string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.campaign, "campaign", levels.DefaultCampaign, "Campaign ID to play")
	cmd.Flags().IntVar(&f.level, "level", 1, "Level number to start from")
	cmd.Flags().BoolVar(&f.cont, "continue", false, "Start from the furthest level reached by the profile")
	cmd.Flags().StringVar(&f.config, "config", "", "Path to custom game config YAML")
}

// localSession is everything a local driver needs to start.
type localSession struct {
	campaign   levels.Campaign
	quest      config.QuestConfig
	store      *storage.Store
	startLevel int
}

// Close releases the museum database.
func (s *localSession) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// prepare loads the campaign and game config and opens the museum store.
// A store that cannot be opened is logged and play continues without it.
func (f *sessionFlags) prepare(logger *log.Logger) (*localSession, error) {
	campaign, err := levels.Resolve(f.campaign, flagLevelsDir)
	if err != nil {
		return nil, err
	}

	questCfg, err := config.LoadQuest(f.config)
	if err != nil {
		return nil, err
	}

	s := &localSession{
		campaign:   campaign,
		quest:      questCfg,
		startLevel: max(0, f.level-1),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open museum database", "error", err)
		return s, nil
	}
	s.store = store

	if f.cont {
		p, err := store.Progress(flagProfile, campaign.ID)
		if err != nil {
			logger.Warn("could not read progress", "error", err)
		} else if !p.Completed {
			s.startLevel = p.FurthestLevel
		}
	}

	logger.Info("session ready",
		"campaign", campaign.ID,
		"levels", campaign.Count(),
		"start", s.startLevel+1,
		"profile", flagProfile,
	)
	return s, nil
}
