package fonts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFontServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var indexHits atomic.Int32
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/ofl/opensans", func(w http.ResponseWriter, r *http.Request) {
		indexHits.Add(1)
		_ = json.NewEncoder(w).Encode([]githubFile{
			{Name: "OFL.txt", Type: "file", DownloadURL: srv.URL + "/raw/ofl/opensans/OFL.txt"},
			{Name: "OpenSans-Italic.ttf", Type: "file", DownloadURL: srv.URL + "/raw/ofl/opensans/OpenSans-Italic.ttf"},
			{Name: "Evil.ttf", Type: "file", DownloadURL: "https://elsewhere.example/Evil.ttf"},
			{Name: "OpenSans-Regular.ttf", Type: "file", DownloadURL: srv.URL + "/raw/ofl/opensans/OpenSans-Regular.ttf"},
		})
	})
	mux.HandleFunc("/ofl/onlyitalic", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]githubFile{
			{Name: "OnlyItalic-Italic.otf", Type: "file", DownloadURL: srv.URL + "/raw/ofl/onlyitalic/OnlyItalic-Italic.otf"},
		})
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("font-bytes"))
	})
	return srv, &indexHits
}

func newTestInstaller(t *testing.T, srv *httptest.Server) *Installer {
	in := NewInstaller(t.TempDir())
	in.IndexURL = srv.URL + "/ofl"
	in.RawPrefix = srv.URL + "/raw/"
	in.Client = srv.Client()
	return in
}

func TestFolderCandidates(t *testing.T) {
	assert.Equal(t, []string{"opensans", "open-sans"}, FolderCandidates(" Open Sans "))
	assert.Equal(t, []string{"inter"}, FolderCandidates("Inter"))
	assert.Nil(t, FolderCandidates("  "))
}

func TestInstall_PrefersUprightFace(t *testing.T) {
	srv, hits := newFontServer(t)
	in := newTestInstaller(t, srv)

	p, err := in.Install(context.Background(), "Open Sans")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.Dir, "opensans", "OpenSans-Regular.ttf"), p)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "font-bytes", string(data))

	again, err := in.Install(context.Background(), "Open Sans")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, int32(1), hits.Load(), "installed family is found locally")
}

func TestInstall_ItalicFallback(t *testing.T) {
	srv, _ := newFontServer(t)
	in := newTestInstaller(t, srv)

	p, err := in.Install(context.Background(), "OnlyItalic")
	require.NoError(t, err)
	assert.Equal(t, "OnlyItalic-Italic.otf", filepath.Base(p))
}

func TestInstall_NotFound(t *testing.T) {
	srv, _ := newFontServer(t)
	in := newTestInstaller(t, srv)

	_, err := in.Install(context.Background(), "No Such Font")
	assert.ErrorIs(t, err, ErrFamilyNotFound)

	_, err = in.Install(context.Background(), "")
	assert.Error(t, err)
}
