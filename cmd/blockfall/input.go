package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/hotkey"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// Auto-repeat timing in ticks for held movement keys.
const (
	repeatDelay = 10
	repeatRate  = 3
)

var repeatKeys = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowDown}

// KeyTable maps keys to engine commands.
type KeyTable struct {
	bindings *intmap.Map[ebiten.Key, tetris.Command]
}

func NewKeyTable() *KeyTable {
	return &KeyTable{bindings: intmap.New[ebiten.Key, tetris.Command](16)}
}

func DefaultKeyTable() *KeyTable {
	kt := NewKeyTable()
	kt.Bind(ebiten.KeyArrowLeft, tetris.MoveLeft)
	kt.Bind(ebiten.KeyArrowRight, tetris.MoveRight)
	kt.Bind(ebiten.KeyArrowUp, tetris.RotateCW)
	kt.Bind(ebiten.KeyZ, tetris.RotateCCW)
	kt.Bind(ebiten.KeyArrowDown, tetris.SoftDrop)
	kt.Bind(ebiten.KeySpace, tetris.HardDrop)
	kt.Bind(ebiten.KeyC, tetris.Hold)
	kt.Bind(ebiten.KeyP, tetris.TogglePause)
	kt.Bind(ebiten.KeyR, tetris.Restart)
	return kt
}

func (kt *KeyTable) Bind(k ebiten.Key, c tetris.Command) {
	kt.bindings.Put(k, c)
}

func (kt *KeyTable) Unbind(k ebiten.Key) {
	kt.bindings.Del(k)
}

func (kt *KeyTable) Lookup(k ebiten.Key) (tetris.Command, bool) {
	return kt.bindings.Get(k)
}

// InputSystem turns this frame's key presses into queued commands.
type InputSystem struct {
	Keys     *KeyTable
	Pressed  []ebiten.Key
	Repeated []ebiten.Key
	Blocked  func() bool
}

func (s *InputSystem) Execute(frame *loop.Frame) {
	if s.Blocked != nil && s.Blocked() {
		return
	}
	for _, k := range s.Pressed {
		if c, ok := s.Keys.Lookup(k); ok {
			frame.Commands.Push(c)
		}
	}
	for _, k := range s.Repeated {
		if c, ok := s.Keys.Lookup(k); ok && c.Gameplay() {
			frame.Commands.Push(c)
		}
	}
}

// repeatFires reports whether a key held for the given number of ticks
// should emit a repeat this tick. The initial press is handled separately.
func repeatFires(ticks, delay, rate int) bool {
	if ticks <= delay {
		return false
	}
	return (ticks-delay)%rate == 0
}

func currentModifiers() hotkey.Event {
	return hotkey.Event{
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
		Meta:  ebiten.IsKeyPressed(ebiten.KeyMeta),
	}
}

// keyEvent converts a key press into a hotkey event carrying the held
// modifiers. ebiten names letter keys "A".."Z", which normalise to "KeyA".
func keyEvent(k ebiten.Key, mods hotkey.Event) hotkey.Event {
	ev := mods
	ev.Code = hotkey.NormalizeKey(k.String())
	return ev
}
