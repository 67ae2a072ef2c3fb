package hotkey

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// sequenceBuffer is how many typed characters a Sequence remembers.
const sequenceBuffer = 32

// Sequence fires when the most recently typed characters end with a word.
// Matching is case-insensitive and only single-character keys are recorded.
type Sequence struct {
	word string
	buf  []rune
}

func NewSequence(word string) (*Sequence, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, ErrEmpty
	}
	if n := utf8.RuneCountInString(word); n > sequenceBuffer {
		return nil, fmt.Errorf("sequence %q is longer than %d characters", word, sequenceBuffer)
	}
	return &Sequence{word: word, buf: make([]rune, 0, sequenceBuffer)}, nil
}

// Feed records one typed character and reports whether the word is now
// complete.
func (s *Sequence) Feed(r rune) bool {
	if len(s.buf) == sequenceBuffer {
		copy(s.buf, s.buf[1:])
		s.buf = s.buf[:sequenceBuffer-1]
	}
	s.buf = append(s.buf, unicode.ToLower(r))
	return strings.HasSuffix(string(s.buf), s.word)
}

func (s *Sequence) Observe(ev Event) bool {
	if utf8.RuneCountInString(ev.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(ev.Key)
	return s.Feed(r)
}

// Reset forgets everything typed so far.
func (s *Sequence) Reset() {
	s.buf = s.buf[:0]
}

func (s *Sequence) String() string {
	return fmt.Sprintf("type %q", s.word)
}

// ParseTrigger builds a trigger from "combo:<combo>" or "sequence:<word>".
// A value with no prefix is treated as a combo.
func ParseTrigger(s string) (Trigger, error) {
	kind, value, found := strings.Cut(s, ":")
	if !found {
		kind, value = "combo", s
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "combo":
		c, err := ParseCombo(value)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "sequence":
		seq, err := NewSequence(value)
		if err != nil {
			return nil, err
		}
		return seq, nil
	}
	return nil, fmt.Errorf("unknown trigger type %q", kind)
}
