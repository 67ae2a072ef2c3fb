// Package debugui provides Dear ImGui inspection windows for a running
// game. Rendering is queued as a deferred frame command, so the windows
// must be drawn between the ImGui backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// InputState tracks whether Dear ImGui is consuming input. Front ends
// should skip gameplay input while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System refreshes the input state and queues the debug windows.
type System struct {
	Driver *loop.Driver
	Input  InputState

	perf      *PerformanceStats
	inspector *EngineInspector
}

func NewSystem(driver *loop.Driver, historyFrames int) *System {
	return &System{
		Driver:    driver,
		perf:      NewPerformanceStats(historyFrames),
		inspector: &EngineInspector{},
	}
}

func (s *System) Execute(frame *loop.Frame) {
	s.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	s.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	dt := float32(frame.DeltaTime.Seconds())
	frame.Commands.Defer(func() {
		s.perf.Render(s.Driver.Stats(), dt)
		s.inspector.Render(frame.Engine)
	})
}
