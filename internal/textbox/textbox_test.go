package textbox_test

import (
	"testing"

	"house-modeler/internal/textbox"

	"github.com/stretchr/testify/assert"
)

// mono measures every rune as one unit wide.
func mono(s string) float32 { return float32(len([]rune(s))) }

func TestBuffer_Editing(t *testing.T) {
	b := textbox.New("a brick", 0)
	b.Insert(" house\r\n")
	b.InsertRune('é')
	assert.Equal(t, "a brick house\né", b.String())

	b.Backspace()
	b.Backspace()
	assert.Equal(t, "a brick house", b.String())

	b.DeleteWord()
	assert.Equal(t, "a brick ", b.String())
	b.DeleteWord()
	b.DeleteWord()
	assert.Equal(t, "", b.String())
	b.Backspace()
	assert.True(t, b.Blank())

	b.Set("  \n ")
	assert.True(t, b.Blank())
}

func TestBuffer_Limit(t *testing.T) {
	b := textbox.New("abc", 5)
	b.Insert("déf")
	assert.Equal(t, "abcd", b.String(), "cut at a rune boundary")
	b.Insert("x")
	assert.Equal(t, "abcdx", b.String())
	b.Insert("y")
	assert.Equal(t, "abcdx", b.String())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"a modern", "brick", "house"}, textbox.Wrap("a modern brick house", 9, mono))
	assert.Equal(t, []string{"one", "", "two"}, textbox.Wrap("one\n\ntwo", 10, mono))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, textbox.Wrap("abcdefghij", 4, mono))
	assert.Equal(t, []string{""}, textbox.Wrap("", 10, mono))
}
