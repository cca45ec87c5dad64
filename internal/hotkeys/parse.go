package hotkeys

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHotkey is wrapped by every parse failure.
var ErrInvalidHotkey = errors.New("invalid hotkey combination")

// ParseError describes why a hotkey string was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidHotkey, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidHotkey
}

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

var modifierNames = map[string]Modifier{
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"ALT":     ModAlt,
	"SHIFT":   ModShift,
	"WIN":     ModSuper,
	"SUPER":   ModSuper,
}

// keybind names, in the order they are emitted.
var modifierKeybind = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Control"},
	{ModAlt, "Mod1"},
	{ModShift, "Shift"},
	{ModSuper, "Mod4"},
}

// Hotkey is a validated modifier set plus one key.
type Hotkey struct {
	Modifiers Modifier
	// Key is an uppercase letter or digit, or a function key name F1..F12.
	Key string
}

// Parse reads combinations such as "CTRL+ALT+S". At least one modifier is
// required and the final token is the key. Tokens are case-insensitive and
// surrounding whitespace is ignored.
func Parse(input string) (Hotkey, error) {
	fail := func(format string, args ...any) (Hotkey, error) {
		return Hotkey{}, &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
	}

	tokens := strings.Split(input, "+")
	if len(tokens) < 2 || len(tokens) > len(modifierKeybind)+1 {
		return fail("expected 1 to %d modifiers followed by a key, got %d tokens", len(modifierKeybind), len(tokens))
	}

	var hk Hotkey
	for _, tok := range tokens[:len(tokens)-1] {
		name := strings.ToUpper(strings.TrimSpace(tok))
		mod, ok := modifierNames[name]
		if !ok {
			return fail("unknown modifier %q", strings.TrimSpace(tok))
		}
		if hk.Modifiers&mod != 0 {
			return fail("duplicate modifier %q", name)
		}
		hk.Modifiers |= mod
	}

	key := strings.ToUpper(strings.TrimSpace(tokens[len(tokens)-1]))
	if !validKey(key) {
		return fail("unsupported key %q", strings.TrimSpace(tokens[len(tokens)-1]))
	}
	hk.Key = key
	return hk, nil
}

func validKey(key string) bool {
	if len(key) == 1 {
		c := key[0]
		return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	if len(key) >= 2 && len(key) <= 3 && key[0] == 'F' {
		n := 0
		for _, c := range key[1:] {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		return n >= 1 && n <= 12
	}
	return false
}

// String formats the hotkey the way Parse reads it.
func (h Hotkey) String() string {
	var parts []string
	names := []string{"CTRL", "ALT", "SHIFT", "WIN"}
	for i, m := range modifierKeybind {
		if h.Modifiers&m.mod != 0 {
			parts = append(parts, names[i])
		}
	}
	return strings.Join(append(parts, h.Key), "+")
}

// KeySequence returns the combination in xgbutil keybind syntax, for
// example "Control-Mod1-s".
func (h Hotkey) KeySequence() string {
	var parts []string
	for _, m := range modifierKeybind {
		if h.Modifiers&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	key := h.Key
	if len(key) == 1 {
		key = strings.ToLower(key)
	}
	return strings.Join(append(parts, key), "-")
}
