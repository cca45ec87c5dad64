// Package autostart manages the XDG autostart entry that launches the
// daemon at login.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const entryRelPath = "autostart/gridsnap.desktop"

// DefaultPath returns $XDG_CONFIG_HOME/autostart/gridsnap.desktop.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(entryRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve autostart path: %w", err)
	}
	return path, nil
}

// Entry renders the desktop entry that runs exe as a daemon.
func Entry(exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=gridsnap\n")
	b.WriteString("Comment=Snap windows to a grid\n")
	fmt.Fprintf(&b, "Exec=%s daemon\n", quoteExec(exe))
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}

// quoteExec quotes an Exec argument when it contains characters the
// desktop entry format reserves.
func quoteExec(arg string) string {
	if !strings.ContainsAny(arg, " \t\"'\\$`") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(arg) + `"`
}

// Set writes or removes the entry at path.
func Set(path, exe string, enabled bool) error {
	if !enabled {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove autostart entry: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Entry(exe)), 0644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

// Enabled reports whether an entry exists at path.
func Enabled(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
