package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/tetris"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of engines played concurrently, one per goroutine.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Base seed; worker i uses seed+i.")
	configPath := flag.String("config", "", "Path to a YAML rules file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tetris.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	log.Printf("Starting soak with %d workers for %s...\n", *workers, *duration)

	report := &Report{
		Duration:       *duration,
		Workers:        *workers,
		Seed:           *seed,
		Config:         cfg,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	results := make([]WorkerResult, *workers)
	g, ctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	for i := range *workers {
		g.Go(func() error {
			player, err := NewPlayer(cfg, *seed+uint64(i))
			if err != nil {
				return err
			}
			results[i], err = player.Play(ctx)
			return err
		})
	}

	err := g.Wait()
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Merge(results)

	if err != nil {
		log.Printf("Soak failed: %v", err)
	} else {
		log.Println("Soak finished.")
	}

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if err != nil {
		os.Exit(1)
	}
}
