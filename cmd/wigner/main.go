// Command wigner precomputes a Wigner-function propagation run for the
// double-well Schrödinger system and plays it back in a desktop window.
package main

import (
	"flag"
	"log"

	"github.com/quantaviz/go-wigner/config"
	"github.com/quantaviz/go-wigner/pipeline"
	"github.com/quantaviz/go-wigner/playback"
	"github.com/quantaviz/go-wigner/telemetry"
	"github.com/quantaviz/go-wigner/viewer"
)

func main() {
	configPath := flag.String("config", "", "YAML config overriding the embedded defaults")
	outDir := flag.String("out", "", "directory for frames.csv and the effective config (empty disables output)")
	headless := flag.Bool("headless", false, "precompute and export without opening the viewer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.MultiMode() {
		log.Printf("precomputing %d frames (sweep %v, dt=%g, %d steps/frame)...",
			cfg.TotalFrames(), cfg.Sweep.NList, cfg.Grid.Dt, cfg.Sampling.StepsPerFrame)
	} else {
		log.Printf("precomputing %d frames (n=%d, dt=%g, %d steps/frame)...",
			cfg.TotalFrames(), cfg.Grid.N, cfg.Grid.Dt, cfg.Sampling.StepsPerFrame)
	}

	buf, err := pipeline.Precompute(cfg)
	if err != nil {
		log.Fatalf("precompute failed: %v", err)
	}
	log.Printf("precompute done: %d frames at %dx%d, %g time units per frame",
		buf.Len(), buf.Rows(), buf.Cols(), buf.TimePerFrame())

	om, err := telemetry.NewOutputManager(*outDir)
	if err != nil {
		log.Fatalf("preparing output directory: %v", err)
	}
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			log.Fatalf("writing effective config: %v", err)
		}
		if err := om.WriteFrameStats(telemetry.Collect(buf)); err != nil {
			log.Fatalf("writing frame stats: %v", err)
		}
		log.Printf("run artifacts written to %s", *outDir)
	}

	if *headless {
		return
	}

	anim, err := playback.NewAnimator(buf, cfg.Display.ZScale)
	if err != nil {
		log.Fatalf("creating animator: %v", err)
	}
	player := viewer.NewPlayer(anim, cfg.Display.FPS)
	viewer.Run(player, cfg.Display, buf.Len())
}
