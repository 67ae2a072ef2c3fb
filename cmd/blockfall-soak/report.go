package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	Duration       time.Duration
	Workers        int
	Seed           uint64
	Config         tetris.Config
	GCPauseMetrics bool

	TotalTime time.Duration
	Steps     int64
	Games     int
	Pieces    int64
	Lines     int64
	Tetrises  int64
	Best      WorkerResult

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Merge folds the per-worker results into the report totals.
func (r *Report) Merge(results []WorkerResult) {
	for _, res := range results {
		r.Steps += res.Steps
		r.Games += res.Games
		r.Pieces += res.Pieces
		r.Lines += res.Lines
		r.Tetrises += res.Tetrises
		if res.BestScore > r.Best.BestScore || r.Best.BestBoard == "" {
			r.Best = res
		}
	}
}

func (r *Report) StepsPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Steps) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Workers:** {{.Workers}}
- **Base Seed:** {{.Seed}}
- **Board:** {{.Config.Width}}x{{.Config.Height}}
- **Drop Interval:** {{.Config.DropStart}} -> {{.Config.DropMin}} (-{{.Config.AccelPerLevel}}/level, {{.Config.LinesPerLevel}} lines/level)

## Results
- **Total Steps:** {{.Steps}}
- **Total Test Time:** {{.TotalTime}}
- **Steps/sec:** {{printf "%.0f" .StepsPerSecond}}
- **Games Finished:** {{.Games}}
- **Pieces Spawned:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}}
- **Tetrises:** {{.Tetrises}}

## Best Game (seed {{.Best.Seed}}, score {{.Best.BestScore}})
{{.Best.BestBoard}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v int64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"usub64": func(a, b uint64) uint64 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
