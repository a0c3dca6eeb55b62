package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfeld/henyard/audio"
	"github.com/mossfeld/henyard/camera"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics or audio")
	logStats := flag.Bool("log-stats", false, "Output per-session stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxSeconds := flag.Float64("max-seconds", 0, "Session time budget in seconds (0 = use config)")
	noAudio := flag.Bool("no-audio", false, "Disable sound output")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:       rngSeed,
		Headless:   *headless,
		LogStats:   *logStats,
		OutputDir:  *outputDir,
		TimeBudget: *maxSeconds,
	}

	if *headless {
		runHeadless(opts, rngSeed)
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Henyard")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var snd *audio.SoundManager
	if !*noAudio {
		snd = audio.NewSoundManager()
		if err := snd.Initialize(); err != nil {
			slog.Warn("audio unavailable", "error", err)
			snd = nil
		} else {
			defer snd.Cleanup()
		}
	}
	if snd != nil {
		opts.Presenter = &game.AudioPresenter{Sound: snd}
	}

	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), cfg.Derived.ClampHalf32)

	g := game.NewGameWithOptions(opts)
	slog.Info("session started", "seed", rngSeed, "budget", cfg.Session.TimeBudget)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw(cam)

		if g.WantRestart() {
			g.Unload()
			opts.Seed = time.Now().UnixNano()
			g = game.NewGameWithOptions(opts)
			slog.Info("session restarted", "seed", opts.Seed)
		}
	}
	g.Unload()
}

// runHeadless steps the simulation at a fixed delta with no window. Used for
// balance runs and CI.
func runHeadless(opts game.Options, seed int64) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless session", "seed", seed)

	const dt = float32(1.0 / 60.0)
	for !g.Session().Terminal() {
		g.UpdateHeadless(dt)
	}

	s := g.Session()
	slog.Info("headless session finished",
		"outcome", s.Outcome.String(),
		"score", s.Score,
		"elapsed", s.Elapsed,
		"birds_remaining", s.FlockCount(),
		"eggs", s.EggsCollected,
	)
}
