package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// DefaultMaxSize is the longest side, in pixels, a texture is kept at.
const DefaultMaxSize = 1024

// Image is a normalised texture: PNG bytes ready for GPU upload.
type Image struct {
	Width  int
	Height int
	PNG    []byte
}

// normalize sniffs data, decodes it, shrinks it so that its longest side is at most maxSize
// and re-encodes it as PNG.
func normalize(data []byte, maxSize int) (Image, error) {
	mt := mimetype.Detect(data)
	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch {
	case mt.Is("image/png"):
		img, err = png.Decode(r)
	case mt.Is("image/jpeg"):
		img, err = jpeg.Decode(r)
	case mt.Is("image/webp"):
		img, err = webp.Decode(r)
	default:
		return Image{}, fmt.Errorf("texture: unsupported content type %s", mt.String())
	}
	if err != nil {
		return Image{}, fmt.Errorf("texture: decode %s: %w", mt.String(), err)
	}

	img = downscale(img, maxSize)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, fmt.Errorf("texture: encode: %w", err)
	}
	b := img.Bounds()
	return Image{Width: b.Dx(), Height: b.Dy(), PNG: buf.Bytes()}, nil
}

func downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// decodeCached reads back a PNG written by the disk cache.
func decodeCached(data []byte) (Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}
	return Image{Width: cfg.Width, Height: cfg.Height, PNG: data}, nil
}
