package texture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheFileName(t *testing.T) {
	a := cacheFileName("https://example.com/a/wood planks.jpg?v=2")
	b := cacheFileName("https://other.example.com/wood planks.jpg")
	assert.Regexp(t, `^wood_planks-[0-9a-f]{8}\.png$`, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheFileName("https://example.com/a/wood planks.jpg?v=2"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "texture", sanitizeFilename(""))
	assert.Equal(t, "a_b", sanitizeFilename("a/?b"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 200)), 96)
}
