package loop

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// System is a unit of per-frame work. Systems read the engine through the
// frame and queue player commands; commands are applied after every system
// has run.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

type Frame struct {
	DeltaTime time.Duration
	Commands  *Commands
	Engine    *tetris.Engine
}

func newFrame(dt time.Duration, engine *tetris.Engine) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Engine:    engine,
	}
}
