package main

import (
	"context"
	"time"

	"house-modeler/internal/debug"
	"house-modeler/internal/fonts"
	"house-modeler/internal/panel"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const fontInstallTimeout = 30 * time.Second

// fontSwitcher installs font families in the background and applies them on the render
// goroutine, which is the only one allowed to create GL textures.
type fontSwitcher struct {
	installer *fonts.Installer
	ui        *panel.Panel
	overlay   *debug.Overlay
	log       *zap.Logger

	ready   chan string
	current rl.Font
}

func newFontSwitcher(ui *panel.Panel, overlay *debug.Overlay, log *zap.Logger) *fontSwitcher {
	return &fontSwitcher{
		installer: fonts.NewInstaller(fonts.BaseDirs()[0]),
		ui:        ui,
		overlay:   overlay,
		log:       log,
		ready:     make(chan string, 1),
	}
}

// UseFont applies an installed family at the next frame, or downloads it first.
func (s *fontSwitcher) UseFont(family string) {
	if p, err := fonts.Find(fonts.BaseDirs(), family); err == nil {
		s.deliver(p)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fontInstallTimeout)
		defer cancel()
		p, err := s.installer.Install(ctx, family)
		if err != nil {
			s.log.Warn("Font install failed, keeping current font", zap.String("font", family), zap.Error(err))
			return
		}
		s.log.Info("Font installed", zap.String("font", family), zap.String("path", p))
		s.deliver(p)
	}()
}

// deliver keeps only the most recent request.
func (s *fontSwitcher) deliver(path string) {
	for {
		select {
		case s.ready <- path:
			return
		default:
			select {
			case <-s.ready:
			default:
			}
		}
	}
}

// poll loads a delivered font. Call once per frame.
func (s *fontSwitcher) poll() {
	var path string
	select {
	case path = <-s.ready:
	default:
		return
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		s.log.Warn("Failed to load font", zap.String("path", path))
		return
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	s.ui.SetFont(f)
	s.overlay.SetFont(f)
	if s.current.Texture.ID != 0 {
		rl.UnloadFont(s.current)
	}
	s.current = f
}
