// Package textbox is the editing and wrapping logic behind the multi-line prompt input,
// kept free of any drawing so it can be tested headless.
package textbox

import (
	"strings"
	"unicode/utf8"
)

// Buffer is an append-only-cursor text buffer: edits happen at the end, like the prompt box.
type Buffer struct {
	text string
	max  int
}

// New returns a buffer holding text, limited to max bytes (0 means unlimited).
func New(text string, max int) *Buffer {
	b := &Buffer{max: max}
	b.Insert(text)
	return b
}

func (b *Buffer) String() string { return b.text }

// Set replaces the content.
func (b *Buffer) Set(text string) {
	b.text = ""
	b.Insert(text)
}

// Insert appends s. Carriage returns are dropped and tabs become spaces; input beyond the
// limit is cut at a rune boundary.
func (b *Buffer) Insert(s string) {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if b.max > 0 && len(b.text)+len(s) > b.max {
		room := b.max - len(b.text)
		if room <= 0 {
			return
		}
		for room > 0 && !utf8.RuneStart(s[room]) {
			room--
		}
		s = s[:room]
	}
	b.text += s
}

// InsertRune appends r.
func (b *Buffer) InsertRune(r rune) {
	b.Insert(string(r))
}

// Backspace removes the last rune.
func (b *Buffer) Backspace() {
	if b.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
}

// DeleteWord removes trailing spaces and then the last word.
func (b *Buffer) DeleteWord() {
	t := strings.TrimRight(b.text, " ")
	if i := strings.LastIndexAny(t, " \n"); i >= 0 {
		b.text = t[:i+1]
		return
	}
	b.text = ""
}

// Blank reports whether the content is only whitespace.
func (b *Buffer) Blank() bool {
	return strings.TrimSpace(b.text) == ""
}

// Wrap breaks text into lines no wider than width as measured by measure. Explicit newlines
// are kept; words wider than a line are split by rune.
func Wrap(text string, width float32, measure func(string) float32) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Split(para, " ") {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				out = append(out, line)
			}
			line = ""
			for measure(word) > width && utf8.RuneCountInString(word) > 1 {
				cut := fit(word, width, measure)
				out = append(out, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		out = append(out, line)
	}
	return out
}

// fit returns the byte length of the longest prefix of word (at least one rune) within width.
func fit(word string, width float32, measure func(string) float32) int {
	_, first := utf8.DecodeRuneInString(word)
	cut := first
	for i := range word {
		if i == 0 {
			continue
		}
		if measure(word[:i]) > width {
			break
		}
		cut = i
	}
	return cut
}
