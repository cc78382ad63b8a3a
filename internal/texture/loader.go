package texture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"house-modeler/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// State is the load state of one texture URL.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Metric label values for texture loads.
const (
	sourceNetwork = "network"
	sourceDisk    = "disk"
	statusOK      = "ok"
	statusError   = "error"
)

// Options configures a Loader. Zero values select sensible defaults.
type Options struct {
	// CacheDir is where normalised textures are kept between runs. Empty disables the disk cache.
	CacheDir   string
	HTTPClient *http.Client
	MaxSize    int
	Log        *zap.Logger
	Metrics    *metrics.Metrics
}

type entry struct {
	state State
	img   Image
	err   error
}

// Loader fetches textures by URL in the background and caches them in memory and on disk.
// Concurrent loads of the same URL share one download. Safe for concurrent use.
type Loader struct {
	client   *http.Client
	cacheDir string
	maxSize  int
	log      *zap.Logger
	metrics  *metrics.Metrics

	group singleflight.Group
	wg    sync.WaitGroup

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewLoader returns a Loader configured by opts.
func NewLoader(opts Options) *Loader {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		client:   client,
		cacheDir: opts.CacheDir,
		maxSize:  maxSize,
		log:      log,
		metrics:  opts.Metrics,
		entries:  make(map[string]*entry),
	}
}

// Request starts loading url in the background unless it is already known.
func (l *Loader) Request(url string) {
	l.mu.Lock()
	if _, ok := l.entries[url]; ok {
		l.mu.Unlock()
		return
	}
	l.entries[url] = &entry{state: Pending}
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		_, _ = l.Load(context.Background(), url)
	}()
}

// Get returns the state of url and, when Ready, its image. Unknown URLs are Pending.
func (l *Loader) Get(url string) (Image, State) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[url]
	if !ok {
		return Image{}, Pending
	}
	return e.img, e.state
}

// Err returns the failure of url, if it failed.
func (l *Loader) Err(url string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e, ok := l.entries[url]; ok {
		return e.err
	}
	return nil
}

// Wait blocks until every background load started by Request has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Load returns the image at url, blocking until it is available. A Ready result is served
// from memory; a Failed one is retried.
func (l *Loader) Load(ctx context.Context, url string) (Image, error) {
	if img, state := l.Get(url); state == Ready {
		return img, nil
	}
	v, err, _ := l.group.Do(url, func() (interface{}, error) {
		img, err := l.load(ctx, url)
		l.store(url, img, err)
		return img, err
	})
	if err != nil {
		return Image{}, err
	}
	return v.(Image), nil
}

func (l *Loader) store(url string, img Image, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.entries[url] = &entry{state: Failed, err: err}
		return
	}
	l.entries[url] = &entry{state: Ready, img: img}
}

func (l *Loader) load(ctx context.Context, url string) (Image, error) {
	if img, ok := l.readDisk(url); ok {
		l.observe(sourceDisk, statusOK)
		return img, nil
	}

	start := time.Now()
	data, err := fetch(ctx, l.client, url)
	if err == nil {
		var img Image
		img, err = normalize(data, l.maxSize)
		if err == nil {
			l.observe(sourceNetwork, statusOK)
			l.log.Debug("Texture loaded",
				zap.String("url", url),
				zap.Int("width", img.Width),
				zap.Int("height", img.Height),
				zap.Duration("duration", time.Since(start)))
			l.writeDisk(url, img)
			return img, nil
		}
	}
	l.observe(sourceNetwork, statusError)
	l.log.Warn("Texture load failed", zap.String("url", url), zap.Error(err))
	return Image{}, err
}

func (l *Loader) readDisk(url string) (Image, bool) {
	if l.cacheDir == "" {
		return Image{}, false
	}
	path := cachePath(l.cacheDir, url)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.log.Warn("Texture cache read failed", zap.String("path", path), zap.Error(err))
		}
		return Image{}, false
	}
	img, err := decodeCached(data)
	if err != nil {
		l.log.Warn("Discarding corrupt cached texture", zap.String("path", path), zap.Error(err))
		_ = os.Remove(path)
		return Image{}, false
	}
	return img, true
}

func (l *Loader) writeDisk(url string, img Image) {
	if l.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(l.cacheDir, 0755); err != nil {
		l.log.Warn("Texture cache unavailable", zap.String("dir", l.cacheDir), zap.Error(err))
		return
	}
	path := cachePath(l.cacheDir, url)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, img.PNG, 0644); err != nil {
		l.log.Warn("Texture cache write failed", zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		l.log.Warn("Texture cache write failed", zap.String("path", path), zap.Error(err))
	}
}

func (l *Loader) observe(source, status string) {
	if l.metrics != nil {
		l.metrics.TextureFetches.WithLabelValues(source, status).Inc()
	}
}
