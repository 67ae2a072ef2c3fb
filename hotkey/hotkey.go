// Package hotkey parses keyboard shortcuts such as "Ctrl+Shift+T" and
// matches them against key events. It also provides a typed-word trigger
// that fires when the most recent characters spell a given sequence.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmpty = errors.New("empty hotkey")
	ErrNoKey = errors.New("hotkey has no main key")
)

// Event is a key press as seen by a front end. Code names the physical key
// ("KeyT", "ArrowUp", "Digit1"); Key is the produced character or key name
// ("t", "ArrowUp"). Either may be empty.
type Event struct {
	Code  string
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Trigger decides whether an event activates something.
type Trigger interface {
	Observe(ev Event) bool
	String() string
}

// Combo is a parsed shortcut. Modifiers set to true must be held; extra
// modifiers are ignored.
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
	Code  string
}

var keyAliases = map[string]string{
	"space":     "Space",
	"esc":       "Escape",
	"escape":    "Escape",
	"enter":     "Enter",
	"tab":       "Tab",
	"slash":     "Slash",
	"backquote": "Backquote",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
}

// NormalizeKey maps a key name to its code: aliases are expanded, single
// letters become "KeyX" and single digits "DigitN". Anything else is
// returned trimmed.
func NormalizeKey(name string) string {
	k := strings.TrimSpace(name)
	if code, ok := keyAliases[strings.ToLower(k)]; ok {
		return code
	}
	if utf8.RuneCountInString(k) == 1 {
		r, _ := utf8.DecodeRuneInString(k)
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			return "Key" + string(unicode.ToUpper(r))
		case r >= '0' && r <= '9':
			return "Digit" + k
		}
	}
	return k
}

// ParseCombo parses "+"-separated modifiers and one main key. Modifier
// names are case-insensitive: ctrl/control, shift, alt/option and
// meta/cmd/command. When several non-modifier parts are present the last
// one wins.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := 0
	for _, p := range strings.Split(s, "+") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts++
		switch strings.ToLower(p) {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "meta", "cmd", "command":
			c.Meta = true
		default:
			c.Code = NormalizeKey(p)
		}
	}
	if parts == 0 {
		return Combo{}, ErrEmpty
	}
	if c.Code == "" {
		return Combo{}, fmt.Errorf("%w: %q", ErrNoKey, s)
	}
	return c, nil
}

// MustParseCombo is like ParseCombo but panics on error.
func MustParseCombo(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether ev satisfies the combo. The main key may match
// either the event's code or its key name.
func (c Combo) Matches(ev Event) bool {
	if c.Ctrl && !ev.Ctrl {
		return false
	}
	if c.Shift && !ev.Shift {
		return false
	}
	if c.Alt && !ev.Alt {
		return false
	}
	if c.Meta && !ev.Meta {
		return false
	}
	if c.Code == "" {
		return false
	}
	return ev.Code == c.Code || (ev.Key != "" && NormalizeKey(ev.Key) == c.Code)
}

func (c Combo) Observe(ev Event) bool {
	return c.Matches(ev)
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, c.Code)
	return strings.Join(parts, "+")
}
