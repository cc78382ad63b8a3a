package commands_test

import (
	"path/filepath"
	"testing"

	"house-modeler/internal/commands"
	"house-modeler/internal/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewer struct {
	grid   bool
	resets int
}

func (v *fakeViewer) GridVisible() bool     { return v.grid }
func (v *fakeViewer) SetGridVisible(b bool) { v.grid = b }
func (v *fakeViewer) ResetCamera()          { v.resets++ }

type fakeOverlay struct{ fps, mem bool }

func (o *fakeOverlay) SetShowFPS(b bool)      { o.fps = b }
func (o *fakeOverlay) SetShowMemAlloc(b bool) { o.mem = b }

type fakeFonts struct{ used []string }

func (f *fakeFonts) UseFont(family string) { f.used = append(f.used, family) }

func setup(t *testing.T) (*commands.Registry, *fakeViewer, *fakeOverlay, *prefs.Prefs, string) {
	t.Helper()
	v := &fakeViewer{grid: true}
	o := &fakeOverlay{}
	p := prefs.Default()
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	r := commands.NewRegistry()
	commands.RegisterDefaults(r, commands.Targets{Viewer: v, Overlay: o, Prefs: &p, PrefsPath: path})
	return r, v, o, &p, path
}

func run(t *testing.T, r *commands.Registry, line string) (string, error) {
	t.Helper()
	args, ok := commands.Parse(line)
	require.True(t, ok, line)
	return r.Execute(args)
}

func TestParse(t *testing.T) {
	args, ok := commands.Parse("cmd grid --off")
	assert.True(t, ok)
	assert.Equal(t, []string{"grid", "--off"}, args)

	args, ok = commands.Parse("cmd")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = commands.Parse("A cottage with a cmd in it")
	assert.False(t, ok)
	_, ok = commands.Parse("Cmd grid")
	assert.False(t, ok)
}

func TestGridToggle(t *testing.T) {
	r, v, _, p, _ := setup(t)

	out, err := run(t, r, "cmd grid")
	require.NoError(t, err)
	assert.Equal(t, "grid off", out)
	assert.False(t, v.grid)
	assert.False(t, p.GridVisible)

	out, err = run(t, r, "cmd grid --on")
	require.NoError(t, err)
	assert.Equal(t, "grid on", out)

	out, err = run(t, r, "cmd grid --on")
	require.NoError(t, err)
	assert.Equal(t, "grid on", out, "flags are reset between runs")

	_, err = run(t, r, "cmd grid --on --off")
	assert.Error(t, err)
}

func TestOverlayToggles(t *testing.T) {
	r, _, o, p, _ := setup(t)
	_, err := run(t, r, "cmd fps")
	require.NoError(t, err)
	assert.True(t, o.fps)
	assert.True(t, p.ShowFPS)

	_, err = run(t, r, "cmd mem --on")
	require.NoError(t, err)
	assert.True(t, o.mem)
}

func TestCameraReset(t *testing.T) {
	r, v, _, _, _ := setup(t)
	_, err := run(t, r, "cmd camera")
	assert.Error(t, err)
	_, err = run(t, r, "cmd camera --reset")
	require.NoError(t, err)
	assert.Equal(t, 1, v.resets)
}

func TestPrefsSave(t *testing.T) {
	r, _, _, _, path := setup(t)
	_, err := run(t, r, "cmd fps --on")
	require.NoError(t, err)

	out, err := run(t, r, "cmd prefs --save")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.True(t, prefs.Load(path).ShowFPS)
}

func TestErrors(t *testing.T) {
	r, _, _, _, _ := setup(t)
	_, err := run(t, r, "cmd")
	assert.Error(t, err)
	_, err = run(t, r, "cmd teleport")
	assert.EqualError(t, err, "unknown command: teleport")
	_, err = run(t, r, "cmd grid --sideways")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	r, _, _, _, _ := setup(t)
	out, err := run(t, r, "cmd help")
	require.NoError(t, err)
	for _, n := range []string{"camera", "fps", "grid", "help", "mem", "prefs"} {
		assert.Contains(t, out, "cmd "+n)
	}
	assert.Equal(t, []string{"camera", "fps", "grid", "help", "mem", "prefs"}, r.Names())
}

func TestFontCommand(t *testing.T) {
	p := prefs.Default()
	f := &fakeFonts{}
	r := commands.NewRegistry()
	commands.RegisterDefaults(r, commands.Targets{Viewer: &fakeViewer{}, Overlay: &fakeOverlay{}, Fonts: f, Prefs: &p})

	out, err := run(t, r, "cmd font")
	require.NoError(t, err)
	assert.Equal(t, "font: default", out)

	out, err = run(t, r, "cmd font Open Sans")
	require.NoError(t, err)
	assert.Equal(t, "loading font Open Sans...", out)
	assert.Equal(t, []string{"Open Sans"}, f.used)
	assert.Equal(t, "Open Sans", p.Font)

	out, err = run(t, r, "cmd font")
	require.NoError(t, err)
	assert.Equal(t, "font: Open Sans", out)
}

func TestFontCommand_NotRegisteredWithoutSwitcher(t *testing.T) {
	r, _, _, _, _ := setup(t)
	assert.NotContains(t, r.Names(), "font")
}
