package quest

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

// Recorder logs session events and saves museum progress for a profile.
// A nil Store disables persistence; storage failures are logged and never
// stop the game.
type Recorder struct {
	Store   *storage.Store
	Logger  *log.Logger
	Profile string
}

// NewRecorder returns a recorder that discards logs when logger is nil.
func NewRecorder(store *storage.Store, logger *log.Logger, profile string) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{Store: store, Logger: logger, Profile: profile}
}

// Record handles one event of the campaign c. It returns a status line
// for the driver to show, or "" when there is nothing to announce.
func (r *Recorder) Record(c *levels.Campaign, e sim.Event) string {
	switch e.Kind {
	case sim.EventLevelComplete:
		lvl, _ := c.Level(e.Level)
		r.Logger.Info("level complete", "campaign", c.ID, "level", lvl.ID, "profile", r.Profile)
		if r.Store == nil {
			return ""
		}

		var status string
		added, err := r.Store.Unlock(storage.UnlockEntry{
			Profile:    r.Profile,
			CampaignID: c.ID,
			LevelIndex: e.Level,
			LevelID:    lvl.ID,
			Title:      lvl.Lore.Title,
		})
		if err != nil {
			r.Logger.Warn("could not save unlock", "error", err)
		} else if added {
			status = "New museum entry: " + lvl.Lore.Title
		}
		if err := r.Store.RecordProgress(r.Profile, c.ID, e.Level+1); err != nil {
			r.Logger.Warn("could not save progress", "error", err)
		}
		return status

	case sim.EventGameOver:
		r.Logger.Info("game over", "campaign", c.ID, "level", e.Level, "profile", r.Profile)

	case sim.EventAllLevelsWon:
		r.Logger.Info("all levels won", "campaign", c.ID, "profile", r.Profile)
		if r.Store != nil {
			if err := r.Store.MarkCompleted(r.Profile, c.ID); err != nil {
				r.Logger.Warn("could not save completion", "error", err)
			}
		}
	}
	return ""
}
