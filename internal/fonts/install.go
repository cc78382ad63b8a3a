package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultIndexURL lists the families under google/fonts/ofl.
	DefaultIndexURL = "https://api.github.com/repos/google/fonts/contents/ofl"
	// DefaultRawPrefix is the only host font files are downloaded from.
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"

	maxFontBytes = 16 << 20
)

// ErrFamilyNotFound is returned when no folder variant of a family exists upstream.
var ErrFamilyNotFound = errors.New("fonts: family not found on Google Fonts")

// Installer downloads font families from the Google Fonts repository into Dir.
type Installer struct {
	Dir       string
	IndexURL  string
	RawPrefix string
	Client    *http.Client
}

// NewInstaller returns an Installer writing under dir with the public endpoints.
func NewInstaller(dir string) *Installer {
	return &Installer{
		Dir:       dir,
		IndexURL:  DefaultIndexURL,
		RawPrefix: DefaultRawPrefix,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// FolderCandidates returns the upstream folder names tried for a display name:
// "Open Sans" yields "opensans" then "open-sans".
func FolderCandidates(family string) []string {
	lower := strings.ToLower(strings.TrimSpace(family))
	if lower == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(lower, " ", "")
	out := []string{noSpaces}
	if hyphens := strings.ReplaceAll(lower, " ", "-"); hyphens != noSpaces {
		out = append(out, hyphens)
	}
	return out
}

// Install downloads one upright face of family into Dir/<folder>/ and returns its path.
// An already installed family is returned without touching the network.
func (in *Installer) Install(ctx context.Context, family string) (string, error) {
	if p, err := Find([]string{in.Dir}, family); err == nil {
		return p, nil
	}
	candidates := FolderCandidates(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := in.downloadURL(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		return in.save(ctx, folder, u)
	}
	return "", lastErr
}

// downloadURL picks the first non-italic font file of folder, falling back to an italic one.
// Files outside RawPrefix are ignored.
func (in *Installer) downloadURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.IndexURL+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := in.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrFamilyNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: index HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	var fallback string
	for _, f := range files {
		if f.Type != "file" || !isFont(f.Name) || !strings.HasPrefix(f.DownloadURL, in.RawPrefix) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("fonts: no .ttf/.otf file for %q", folder)
}

func (in *Installer) save(ctx context.Context, folder, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := in.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: download HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontBytes))
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	dir := filepath.Join(in.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	dest := filepath.Join(dir, path.Base(u.Path))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	return dest, nil
}
