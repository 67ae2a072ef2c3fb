package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// EngineInspector shows the engine's counters, queue and board.
type EngineInspector struct{}

// Summary lists the label/value rows shown at the top of the inspector.
func Summary(snap tetris.Snapshot) [][2]string {
	return [][2]string{
		{"Status", snap.Status.String()},
		{"Score", fmt.Sprint(snap.Score)},
		{"Lines", fmt.Sprint(snap.Lines)},
		{"Level", fmt.Sprint(snap.Level)},
		{"Drop Interval", snap.DropInterval.String()},
		{"Active", fmt.Sprintf("%s rot %d at (%d,%d)", snap.Active.Type, snap.Active.Rotation, snap.Active.X, snap.Active.Y)},
		{"Ghost Row", fmt.Sprint(snap.GhostY)},
		{"Next", snap.Next.String()},
		{"Hold", snap.Held.String()},
	}
}

func (ei *EngineInspector) Render(engine *tetris.Engine) {
	snap := engine.Snapshot()
	stats := engine.Stats()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 420), imgui.CondOnce)
	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, row := range Summary(snap) {
		imgui.Text(fmt.Sprintf("%s: %s", row[0], row[1]))
	}

	imgui.Separator()
	if imgui.TreeNodeStr("Pieces") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PieceTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Piece")
			imgui.TableSetupColumn("Spawned")
			imgui.TableHeadersRow()

			for _, pt := range tetris.AllPieces {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pt.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.Spawned(pt)))
			}

			imgui.EndTable()
		}
		imgui.BulletText(fmt.Sprintf("Total: %d", stats.Pieces))
		imgui.BulletText(fmt.Sprintf("Holds: %d", stats.Holds))
		imgui.BulletText(fmt.Sprintf("Soft/Hard Drops: %d / %d", stats.SoftDrops, stats.HardDrops))
		imgui.BulletText(fmt.Sprintf("Tetrises: %d (best clear %d)", stats.Tetrises, stats.MaxClear))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Board") {
		for _, line := range strings.Split(strings.TrimRight(snap.String(), "\n"), "\n") {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}
