package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	balls "github.com/zegevlier/bevy-balls"
	"github.com/zegevlier/bevy-balls/internal/audio"
	"github.com/zegevlier/bevy-balls/internal/logging"
	"github.com/zegevlier/bevy-balls/internal/tui"
)

type game struct {
	screen   tcell.Screen
	renderer *tui.Renderer
	world    *balls.World
	sound    *audio.Manager
	logger   *zap.Logger
	tick     uint64
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		seed       = flag.String("seed", "", "deterministic RNG seed; empty picks a random one")
		logPath    = flag.String("log-file", "", "write logs to this file (stderr belongs to the screen)")
		mute       = flag.Bool("mute", false, "disable audio")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *logPath != "" {
		var err error
		logger, err = logging.NewFile("info", *logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	cfg, err := balls.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *seed != "" {
		cfg.Seed = *seed
	}

	g, err := newGame(cfg, logger, !*mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}

func newGame(cfg balls.Config, logger *zap.Logger, withAudio bool) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	g := &game{
		screen:   screen,
		renderer: tui.NewRenderer(screen),
		world:    balls.NewWorld(cfg),
		sound:    audio.NewManager(),
		logger:   logger,
	}

	if withAudio {
		if err := g.sound.Init(); err != nil {
			// The game runs fine silent.
			logger.Warn("audio init failed", zap.Error(err))
		}
	}

	logger.Info("game started", zap.String("seed", g.world.Config().Seed))
	return g, nil
}

func (g *game) run() {
	cfg := g.world.Config()
	dt := 1.0 / float64(cfg.TickRate)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			eventCh <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventCh:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			events := g.world.Step(dt)
			g.tick++
			g.sound.Play(events.Cues)
			if events.Spawned != nil {
				g.logger.Info("ball spawned", zap.String("ball", events.Spawned.ID))
			}
			g.renderer.Draw(g.world.Snapshot(), cfg, g.tick)
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				g.world.Reset()
				ball := g.world.Spawn()
				g.logger.Info("world reset", zap.String("ball", ball.ID))
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) cleanup() {
	g.sound.Close()
	g.screen.Fini()
}
