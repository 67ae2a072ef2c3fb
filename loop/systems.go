package loop

import (
	"log"

	"github.com/plus3/blockfall/tetris"
)

// GravitySystem feeds the frame time to the engine's gravity.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	frame.Engine.Tick(frame.DeltaTime)
}

// ScriptSystem replays a fixed list of commands, one per frame. It is used
// for demos and tests.
type ScriptSystem struct {
	Script []tetris.Command
	next   int
}

func (s *ScriptSystem) Execute(frame *Frame) {
	if s.next >= len(s.Script) {
		return
	}
	frame.Commands.Push(s.Script[s.next])
	s.next++
}

// Done reports whether every scripted command has been queued.
func (s *ScriptSystem) Done() bool {
	return s.next >= len(s.Script)
}

// StatusWatcher reports engine status transitions once each. It compares
// against the status seen on the previous frame, so changes caused by
// commands flushed at the end of a frame are reported on the next one.
type StatusWatcher struct {
	Logger   *log.Logger
	OnChange func(from, to tetris.Status)

	last    tetris.Status
	started bool
}

func (s *StatusWatcher) Execute(frame *Frame) {
	status := frame.Engine.Status()
	if !s.started {
		s.started = true
		s.last = status
		return
	}
	if status == s.last {
		return
	}

	from := s.last
	s.last = status

	if s.Logger != nil {
		snap := frame.Engine.Snapshot()
		s.Logger.Printf("[loop] status %s -> %s (score %d, lines %d, level %d)",
			from, status, snap.Score, snap.Lines, snap.Level)
	}
	if s.OnChange != nil {
		s.OnChange(from, status)
	}
}
