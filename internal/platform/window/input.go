package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/petroglyphs/internal/core"
)

// KeyBindings maps actions to the keys that trigger them.
type KeyBindings map[core.Action][]ebiten.Key

// DefaultKeyBindings mirrors the terminal key map.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		core.ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH},
		core.ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL},
		core.ActionJump:    {ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace, ebiten.KeyK},
		core.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
		core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
		core.ActionRestart: {ebiten.KeyR},
		core.ActionQuit:    {ebiten.KeyQ},
	}
}

// held reports whether an action is a continuous hold rather than an edge.
func held(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// Poll copies the keyboard state into latch. Walking actions follow the
// real key state; every other action is latched only on the frame its key
// goes down.
func (b KeyBindings) Poll(latch *core.InputLatch) {
	for action, keys := range b {
		if held(action) {
			if anyPressed(keys) {
				latch.Hold(action)
			} else {
				latch.Release(action)
			}
			continue
		}
		if anyJustPressed(keys) {
			latch.Tap(action)
		}
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
