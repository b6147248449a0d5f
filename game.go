package pickit

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Host to ebiten.Game. Update runs Step; Draw runs Render on
// the screen. A Draw failure is reported by the following Update, since
// Draw cannot return an error.
type game struct {
	host   *Host
	canvas *Canvas
	fps    *fpsOverlay
}

func (g *game) Update() error {
	if err := g.host.Step(); err != nil {
		return err
	}
	if g.host.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.bind(screen)
	if err := g.host.Render(g.canvas); err != nil {
		return
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.host.flushScreenshots(screen)
	if g.host.cfg.Debug {
		g.host.stats.flush(g.host.now())
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.host.cfg.Width, g.host.cfg.Height
}

// Run opens a window and runs entry until the window is closed, a test
// script quits, or a callback fails.
func Run(cfg Config, entry Entry, opts ...Option) error {
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	if err := SetLogLevel(level); err != nil {
		return err
	}
	h, err := New(cfg, entry, opts...)
	if err != nil {
		return err
	}
	defer h.Close()

	if h.mixer == nil {
		h.mixer = newEbitenMixer(cfg.SampleRate, cfg.Volume)
	}
	if h.source == nil {
		h.source = newEbitenSource(func() (int, int) { return cfg.Width, cfg.Height })
	}
	if cfg.TestScript != "" {
		data, err := os.ReadFile(cfg.TestScript)
		if err != nil {
			return fmt.Errorf("pickit: read test script: %w", err)
		}
		runner, err := LoadTestScript(data)
		if err != nil {
			return fmt.Errorf("pickit: %w", err)
		}
		h.SetTestRunner(runner)
	}

	if err := h.Start(context.Background()); err != nil {
		return err
	}
	if cfg.Watch {
		if err := h.Watch(); err != nil {
			logWarn("file watching disabled", "err", err)
		}
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	// One Update per rendered frame; the pacer decides when update runs.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := &game{host: h, canvas: newCanvas(h.camera)}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
