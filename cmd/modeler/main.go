// Command modeler is the desktop AI 3D house modeler: a prompt panel on the left and an
// orbitable 3D view of the generated house on the right.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"house-modeler/internal/app"
	"house-modeler/internal/commands"
	"house-modeler/internal/config"
	"house-modeler/internal/debug"
	"house-modeler/internal/generate"
	"house-modeler/internal/graphics"
	"house-modeler/internal/llm"
	"house-modeler/internal/logger"
	"house-modeler/internal/metrics"
	"house-modeler/internal/panel"
	"house-modeler/internal/prefs"
	"house-modeler/internal/render"
	"house-modeler/internal/texture"
	"house-modeler/internal/viewer"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg, err := config.Load()
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			fmt.Fprintf(os.Stderr, "%v\nSet it in the environment or in a .env file.\n", cerr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logger.DefaultFilePath
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New()
	client, err := llm.New(cfg.LLMOptions())
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}
	gen, err := generate.New(client, cfg.Model, log, m)
	if err != nil {
		log.Fatal("Failed to create generator", zap.Error(err))
	}
	ctl := app.NewController(gen, log)

	p := prefs.Load(cfg.PrefsPath)
	loader := texture.NewLoader(texture.Options{CacheDir: cfg.TextureCacheDir, Log: log, Metrics: m})
	view := viewer.New(loader, log)
	view.SetGridVisible(p.GridVisible)
	overlay := debug.New()
	overlay.SetShowFPS(p.ShowFPS)
	overlay.SetShowMemAlloc(p.ShowMemAlloc)

	reg := commands.NewRegistry()
	ui := panel.New(ctl, reg, log)
	fontSw := newFontSwitcher(ui, overlay, log)
	commands.RegisterDefaults(reg, commands.Targets{
		Viewer:    view,
		Overlay:   overlay,
		Fonts:     fontSw,
		Prefs:     &p,
		PrefsPath: cfg.PrefsPath,
	})
	if p.Font != "" {
		fontSw.UseFont(p.Font)
	}

	if p.PrefetchTextures {
		view.Prefetch(render.TextureURLs())
	}
	log.Info("Starting modeler",
		zap.String("provider", client.Name()),
		zap.String("model", cfg.Model),
		zap.String("texture_cache", cfg.TextureCacheDir))

	update := func() {
		fontSw.poll()
		ui.Update()
		view.Update(viewport())
	}
	draw := func() {
		area := viewport()
		state := ctl.State()
		if state.Frame.Empty() {
			ui.DrawPlaceholder(area)
		} else {
			view.SetFrame(state.Frame, state.Version)
			view.Draw(area)
		}
		overlay.Draw(area)
		ui.Draw(state)
	}
	graphics.Run(graphics.Window{
		Title:  panel.Title,
		Width:  p.WindowWidth,
		Height: p.WindowHeight,
		FPS:    60,
	}, update, draw)

	view.Close()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	waitIdle(ctx, ctl, loader)
	log.Info("Modeler closed")
}

// viewport is the window area right of the panel.
func viewport() rl.Rectangle {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	return rl.NewRectangle(panel.Width, 0, w-panel.Width, h)
}
