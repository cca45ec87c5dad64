package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/gridsnap/internal/hotkeys"
	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(data)+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Margins != 10 || cfg.WindowPadding != 10 || cfg.GridMargins != 3 {
		t.Fatalf("unexpected default margins: %+v", cfg)
	}
	if len(cfg.Profiles) != MaxProfiles || cfg.Profiles[0] != "Default" {
		t.Fatalf("unexpected default profiles: %v", cfg.Profiles)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Hotkey != "CTRL+ALT+S" {
		t.Fatalf("expected default hotkey, got %q", res.Config.Hotkey)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Margins != 10 {
		t.Fatalf("expected default margins, got %d", res.Config.Margins)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
margins: 4
window_padding: 0
hotkey: "SUPER+SHIFT+G"
hotkey_maximize_toggle: "CTRL+ALT+X"
auto_start: true
profiles: [Work, Play]
`)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Margins != 4 || cfg.WindowPadding != 0 || cfg.GridMargins != 3 {
		t.Fatalf("unexpected margins: %+v", cfg)
	}
	if !cfg.AutoStart {
		t.Fatalf("expected auto_start true")
	}
	if len(cfg.Profiles) != 2 || cfg.Profiles[1] != "Play" {
		t.Fatalf("unexpected profiles: %v", cfg.Profiles)
	}

	hks, err := cfg.ParseHotkeys()
	if err != nil {
		t.Fatalf("parse hotkeys: %v", err)
	}
	if hks.Main.String() != "SHIFT+WIN+G" {
		t.Fatalf("unexpected main hotkey %q", hks.Main.String())
	}
	if hks.QuickResize != nil {
		t.Fatalf("expected no quick resize hotkey")
	}
	if hks.Maximize == nil || hks.Maximize.String() != "CTRL+ALT+X" {
		t.Fatalf("unexpected maximize hotkey %v", hks.Maximize)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "gap_size: 4")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
	if !strings.Contains(err.Error(), "gap_size") {
		t.Fatalf("expected error to mention gap_size, got %v", err)
	}
}

func TestLoadFromPath_InvalidHotkeyHasSourceContext(t *testing.T) {
	path := writeConfig(t, `
margins: 10
hotkey: "CTRL+ALT+SPACE"
`)

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected invalid hotkey error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "hotkey" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error %#v", verr)
	}
	if !errors.Is(err, hotkeys.ErrInvalidHotkey) {
		t.Fatalf("expected ErrInvalidHotkey in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative margins", func(c *Config) { c.Margins = -1 }, "margins"},
		{"huge padding", func(c *Config) { c.WindowPadding = 256 }, "window_padding"},
		{"negative grid margins", func(c *Config) { c.GridMargins = -3 }, "grid_margins"},
		{"no hotkey", func(c *Config) { c.Hotkey = "" }, "hotkey"},
		{"bad quick hotkey", func(c *Config) { c.HotkeyQuickResize = "Q" }, "hotkey_quick_resize"},
		{"no profiles", func(c *Config) { c.Profiles = nil }, "profiles"},
		{"too many profiles", func(c *Config) { c.Profiles = []string{"a", "b", "c", "d", "e", "f", "g"} }, "profiles"},
		{"duplicate profile", func(c *Config) { c.Profiles = []string{"a", "a"} }, "profiles"},
		{"colon in profile", func(c *Config) { c.Profiles = []string{"a:b"} }, "profiles"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestEnsureExample_WritesOnceAndLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridsnap", "config.yaml")

	wrote, err := EnsureExample(path)
	if err != nil || !wrote {
		t.Fatalf("expected example to be written, got %v %v", wrote, err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("example config must load: %v", err)
	}
	if res.Config.Hotkey != DefaultConfig().Hotkey {
		t.Fatalf("unexpected hotkey %q", res.Config.Hotkey)
	}

	if err := os.WriteFile(path, []byte("margins: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	wrote, err = EnsureExample(path)
	if err != nil || wrote {
		t.Fatalf("expected existing file to be kept, got %v %v", wrote, err)
	}
}

func TestSetAutoStart_RewritesOnlyThatLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := EnsureExample(path); err != nil {
		t.Fatalf("example: %v", err)
	}
	before, _ := os.ReadFile(path)

	if err := SetAutoStart(path, true); err != nil {
		t.Fatalf("set: %v", err)
	}
	after, _ := os.ReadFile(path)

	if strings.Count(string(after), "\n") != strings.Count(string(before), "\n") {
		t.Fatalf("expected line count to be preserved")
	}
	if !strings.Contains(string(after), "\nauto_start: true\n") {
		t.Fatalf("expected auto_start: true, got:\n%s", after)
	}
	if !strings.Contains(string(after), "# Start gridsnap when you log in.") {
		t.Fatalf("expected comments to be preserved")
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Config.AutoStart {
		t.Fatalf("expected auto_start to load as true")
	}
}

func TestRewriteAutoStart_AppendsWhenMissing(t *testing.T) {
	got := rewriteAutoStart("margins: 4", false)
	if got != "margins: 4\nauto_start: false\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestLoad_AutoStartAcceptsYesOn(t *testing.T) {
	for _, v := range []string{"y", "yes", "On", "YES"} {
		res, err := LoadFromPath(writeConfig(t, "auto_start: "+v))
		if err != nil {
			t.Fatalf("load %q: %v", v, err)
		}
		if !res.Config.AutoStart {
			t.Fatalf("expected auto_start: %s to load as true", v)
		}
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, `
margins: 7
profiles: [A, B]
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "margins")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 7 || src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("unexpected explain result %#v %#v", val, src)
	}

	val, src, err = Explain(res, "profiles.1")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "B" || src.Kind != SourceFile {
		t.Fatalf("unexpected explain result %#v %#v", val, src)
	}

	val, src, err = Explain(res, "grid_margins")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 3 || src.Kind != SourceDefault {
		t.Fatalf("unexpected explain result %#v %#v", val, src)
	}

	if _, _, err := Explain(res, "profiles.9"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, _, err := Explain(res, "margins.top"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "margins: 1")

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { got <- cfg }, log.New(io.Discard))
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// An invalid edit is skipped.
	if err := os.WriteFile(path, []byte("margins: -5\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-got:
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(3 * reloadDelay):
	}

	if err := os.WriteFile(path, []byte("margins: 9\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-got:
		if cfg.Margins != 9 {
			t.Fatalf("expected margins 9, got %d", cfg.Margins)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload")
	}
}
