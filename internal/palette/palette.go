// Package palette shows gridsnap's menu through an external dmenu-style
// launcher (rofi, fuzzel, wofi or dmenu) and runs the chosen entry against
// the daemon.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette.
type Item struct {
	Label    string
	Action   string
	Icon     string
	IsHeader bool // Non-selectable section header
	IsActive bool // Highlighted as the current choice
}

// Backend shows a palette and returns the selected item.
type Backend interface {
	Show(prompt string, items []Item, message string) (Item, error)
}

var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// NewBackend creates a backend by name. "auto" or "" picks the first
// launcher found in PATH.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		for _, l := range launchers {
			if _, err := exec.LookPath(l); err == nil {
				return newLauncher(l), nil
			}
		}
		return nil, fmt.Errorf("no palette launcher found in PATH (tried %s)", strings.Join(launchers, ", "))
	}

	for _, l := range launchers {
		if l != name {
			continue
		}
		if _, err := exec.LookPath(l); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", l)
		}
		return newLauncher(l), nil
	}
	return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(launchers, ", "))
}
