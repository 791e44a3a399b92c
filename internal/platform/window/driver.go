package window

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/petroglyphs/internal/config"
	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

// Options configures a desktop window run.
type Options struct {
	Campaign   levels.Campaign
	Quest      config.QuestConfig
	TickRate   int
	Profile    string
	StartLevel int
	Store      *storage.Store // Optional
	Logger     *log.Logger    // Optional
}

// Driver implements ebiten.Game for the quest game. Update runs exactly
// one simulation step per tick.
type Driver struct {
	game     *quest.Game
	latch    *core.InputLatch
	keys     KeyBindings
	recorder *quest.Recorder
	logger   *log.Logger
	tick     int
}

// NewDriver creates a driver for the given options.
func NewDriver(opts Options) *Driver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := quest.New(opts.Campaign, opts.Quest.Params())
	game.SetStartLevel(opts.StartLevel)

	return &Driver{
		game:     game,
		latch:    core.NewInputLatch(opts.Quest.Input.HoldTicks),
		keys:     DefaultKeyBindings(),
		recorder: quest.NewRecorder(opts.Store, logger, opts.Profile),
		logger:   logger,
	}
}

// Game returns the wrapped game.
func (d *Driver) Game() *quest.Game {
	return d.game
}

// Update polls the keyboard and advances the game by one step.
func (d *Driver) Update() error {
	d.keys.Poll(d.latch)
	return d.step(d.latch.Sample(d.tick))
}

// step applies one sampled frame. Split from Update so the loop can run
// without a window.
func (d *Driver) step(frame core.InputFrame) error {
	d.tick++
	if frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	res, err := d.game.Step(frame)
	if err != nil {
		d.logger.Error("step failed", "error", err)
	}
	for _, e := range res.Events {
		d.recorder.Record(d.game.Campaign(), e)
	}
	return nil
}

// Draw renders the current scene.
func (d *Driver) Draw(screen *ebiten.Image) {
	for _, op := range Scene(d.game) {
		switch op.Kind {
		case OpFill:
			vector.FillRect(screen, float32(op.X), float32(op.Y), float32(op.W), float32(op.H), op.Color, false)
		case OpStroke:
			vector.StrokeRect(screen, float32(op.X), float32(op.Y), float32(op.W), float32(op.H), 2, op.Color, false)
		case OpText:
			ebitenutil.DebugPrintAt(screen, op.Text, int(op.X), int(op.Y))
		}
	}
}

// Layout keeps the logical screen at the playfield size.
func (d *Driver) Layout(_, _ int) (int, int) {
	p := d.game.Session().Params()
	return int(p.PlayfieldW), int(p.PlayfieldH)
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(opts Options) error {
	d := NewDriver(opts)
	w, h := d.Layout(0, 0)

	tps := opts.TickRate
	if tps <= 0 {
		tps = core.DefaultConfig().TickRate
	}
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(opts.Campaign.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
