package render

import (
	"strconv"
	"strings"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// White is used for colours that cannot be parsed.
var White = RGB{255, 255, 255}

// ParseColor parses a #rgb or #rrggbb colour. Anything else yields White and false.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return White, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return White, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return White, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// Floats returns the colour as 0..1 components.
func (c RGB) Floats() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
