package commands

import (
	"fmt"
	"strings"

	"house-modeler/internal/prefs"
)

// Viewer is the part of the 3D view commands can change.
type Viewer interface {
	GridVisible() bool
	SetGridVisible(bool)
	ResetCamera()
}

// Overlay is the debug overlay.
type Overlay interface {
	SetShowFPS(bool)
	SetShowMemAlloc(bool)
}

// FontSwitcher applies a font family, installing it first when missing. It must not block.
type FontSwitcher interface {
	UseFont(family string)
}

// Targets are what the built-in commands act on.
type Targets struct {
	Viewer  Viewer
	Overlay Overlay
	// Fonts is optional; without it the font command is not registered.
	Fonts FontSwitcher
	// Prefs is updated by every toggle and written to PrefsPath by "prefs --save".
	Prefs     *prefs.Prefs
	PrefsPath string
}

// RegisterDefaults adds grid, fps, mem, camera, prefs, font (when Fonts is set) and help.
func RegisterDefaults(r *Registry, t Targets) {
	toggle := func(name, what string, current func() bool, set func(bool)) {
		fs := NewFlagSet(name)
		on := fs.Bool("on", false, "show "+what)
		off := fs.Bool("off", false, "hide "+what)
		r.Register(name, "[--on|--off]", fs, func() (string, error) {
			if *on && *off {
				return "", fmt.Errorf("%s: --on and --off are exclusive", name)
			}
			v := !current()
			switch {
			case *on:
				v = true
			case *off:
				v = false
			}
			set(v)
			if v {
				return what + " on", nil
			}
			return what + " off", nil
		})
	}

	toggle("grid", "grid",
		func() bool { return t.Viewer.GridVisible() },
		func(v bool) {
			t.Viewer.SetGridVisible(v)
			t.Prefs.GridVisible = v
		})
	toggle("fps", "FPS counter",
		func() bool { return t.Prefs.ShowFPS },
		func(v bool) {
			t.Overlay.SetShowFPS(v)
			t.Prefs.ShowFPS = v
		})
	toggle("mem", "memory counter",
		func() bool { return t.Prefs.ShowMemAlloc },
		func(v bool) {
			t.Overlay.SetShowMemAlloc(v)
			t.Prefs.ShowMemAlloc = v
		})

	camFS := NewFlagSet("camera")
	reset := camFS.Bool("reset", false, "frame the model again")
	r.Register("camera", "--reset", camFS, func() (string, error) {
		if !*reset {
			return "", fmt.Errorf("camera: nothing to do (try --reset)")
		}
		t.Viewer.ResetCamera()
		return "camera reset", nil
	})

	prefsFS := NewFlagSet("prefs")
	save := prefsFS.Bool("save", false, "write preferences to disk")
	r.Register("prefs", "--save", prefsFS, func() (string, error) {
		if !*save {
			return fmt.Sprintf("fps=%t mem=%t grid=%t", t.Prefs.ShowFPS, t.Prefs.ShowMemAlloc, t.Prefs.GridVisible), nil
		}
		if err := prefs.Save(t.PrefsPath, *t.Prefs); err != nil {
			return "", err
		}
		return "preferences saved to " + t.PrefsPath, nil
	})

	if t.Fonts != nil {
		fontFS := NewFlagSet("font")
		r.Register("font", "<family>", fontFS, func() (string, error) {
			family := strings.Join(fontFS.Args(), " ")
			if family == "" {
				if t.Prefs.Font == "" {
					return "font: default", nil
				}
				return "font: " + t.Prefs.Font, nil
			}
			t.Prefs.Font = family
			t.Fonts.UseFont(family)
			return "loading font " + family + "...", nil
		})
	}

	r.Register("help", "", nil, func() (string, error) {
		return r.Help(), nil
	})
}
