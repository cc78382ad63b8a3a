package viewer

import (
	"house-modeler/internal/texture"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type gpuTexture struct {
	tex    rl.Texture2D
	failed bool
}

// textures uploads images from the loader to the GPU on the render goroutine and keeps them
// until the viewer closes.
type textures struct {
	loader *texture.Loader
	log    *zap.Logger
	cache  map[string]gpuTexture
}

func newTextures(loader *texture.Loader, log *zap.Logger) *textures {
	return &textures{loader: loader, log: log, cache: make(map[string]gpuTexture)}
}

// request starts fetching url if needed.
func (t *textures) request(url string) {
	if _, ok := t.cache[url]; ok {
		return
	}
	t.loader.Request(url)
}

// lookup returns the texture for url. ready is false while it is still loading; textured is
// false when it failed and the box should be drawn untextured.
func (t *textures) lookup(url string) (tex rl.Texture2D, ready, textured bool) {
	if g, ok := t.cache[url]; ok {
		return g.tex, true, !g.failed
	}
	img, state := t.loader.Get(url)
	switch state {
	case texture.Ready:
		g := t.upload(url, img)
		t.cache[url] = g
		return g.tex, true, !g.failed
	case texture.Failed:
		t.log.Warn("Texture unavailable, drawing untextured", zap.String("url", url), zap.Error(t.loader.Err(url)))
		t.cache[url] = gpuTexture{failed: true}
		return rl.Texture2D{}, true, false
	default:
		t.loader.Request(url)
		return rl.Texture2D{}, false, false
	}
}

func (t *textures) upload(url string, img texture.Image) gpuTexture {
	im := rl.LoadImageFromMemory(".png", img.PNG, int32(len(img.PNG)))
	if im == nil || im.Width <= 0 || im.Height <= 0 {
		t.log.Warn("Texture upload failed", zap.String("url", url))
		return gpuTexture{failed: true}
	}
	tex := rl.LoadTextureFromImage(im)
	rl.UnloadImage(im)
	if !rl.IsTextureValid(tex) {
		t.log.Warn("Texture upload failed", zap.String("url", url))
		return gpuTexture{failed: true}
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	return gpuTexture{tex: tex}
}

func (t *textures) unload() {
	for url, g := range t.cache {
		if !g.failed {
			rl.UnloadTexture(g.tex)
		}
		delete(t.cache, url)
	}
}
