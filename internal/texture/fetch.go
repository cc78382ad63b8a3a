package texture

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	userAgent = "house-modeler/1.0 (+texture-loader)"
	// maxDownloadBytes bounds one texture download.
	maxDownloadBytes = 32 << 20
)

// fetch downloads url and returns the raw body.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture: HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("texture: %s exceeds %d bytes", url, maxDownloadBytes)
	}
	return data, nil
}

// cacheFileName derives a stable on-disk name for url: the sanitized base name plus a short
// hash of the full URL, so different hosts serving "wood.jpg" do not collide.
func cacheFileName(url string) string {
	sum := sha1.Sum([]byte(url))
	return sanitizeFilename(filenameFromURL(url)) + "-" + hex.EncodeToString(sum[:4]) + ".png"
}

func cachePath(dir, url string) string {
	return filepath.Join(dir, cacheFileName(url))
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return "texture"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
