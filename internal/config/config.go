package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/gridsnap/internal/hotkeys"
)

// MaxProfiles is the number of profiles reachable from F1..F6.
const MaxProfiles = 6

// Config is the effective gridsnap configuration.
type Config struct {
	// Margins is the gap between neighbouring snap zones.
	Margins int `yaml:"margins"`
	// WindowPadding is the gap between the outer zones and the work area edge.
	WindowPadding int `yaml:"window_padding"`
	// GridMargins is the gap between tiles in the picker.
	GridMargins int `yaml:"grid_margins"`

	Hotkey               string `yaml:"hotkey"`
	HotkeyQuickResize    string `yaml:"hotkey_quick_resize,omitempty"`
	HotkeyMaximizeToggle string `yaml:"hotkey_maximize_toggle,omitempty"`

	AutoStart bool     `yaml:"auto_start"`
	Profiles  []string `yaml:"profiles"`
	LogLevel  string   `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Margins:       10,
		WindowPadding: 10,
		GridMargins:   3,
		Hotkey:        "CTRL+ALT+S",
		Profiles:      DefaultProfiles(),
		LogLevel:      "info",
	}
}

// DefaultProfiles returns the profile names bound to F1..F6.
func DefaultProfiles() []string {
	return []string{"Default", "Profile2", "Profile3", "Profile4", "Profile5", "Profile6"}
}

// Hotkeys holds the parsed hotkeys of a config. Optional hotkeys are nil
// when not configured.
type Hotkeys struct {
	Main        hotkeys.Hotkey
	QuickResize *hotkeys.Hotkey
	Maximize    *hotkeys.Hotkey
}

// ParseHotkeys parses every configured hotkey.
func (c *Config) ParseHotkeys() (Hotkeys, error) {
	var out Hotkeys

	main, err := hotkeys.Parse(c.Hotkey)
	if err != nil {
		return Hotkeys{}, &ValidationError{Path: "hotkey", Err: err}
	}
	out.Main = main

	if c.HotkeyQuickResize != "" {
		hk, err := hotkeys.Parse(c.HotkeyQuickResize)
		if err != nil {
			return Hotkeys{}, &ValidationError{Path: "hotkey_quick_resize", Err: err}
		}
		out.QuickResize = &hk
	}
	if c.HotkeyMaximizeToggle != "" {
		hk, err := hotkeys.Parse(c.HotkeyMaximizeToggle)
		if err != nil {
			return Hotkeys{}, &ValidationError{Path: "hotkey_maximize_toggle", Err: err}
		}
		out.Maximize = &hk
	}
	return out, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Hotkey == "" {
		return &ValidationError{Path: "hotkey", Err: fmt.Errorf("hotkey is required")}
	}
	if _, err := c.ParseHotkeys(); err != nil {
		return err
	}
	if c.Margins < 0 || c.Margins > 255 {
		return &ValidationError{Path: "margins", Err: fmt.Errorf("margins must be between 0 and 255")}
	}
	if c.WindowPadding < 0 || c.WindowPadding > 255 {
		return &ValidationError{Path: "window_padding", Err: fmt.Errorf("window_padding must be between 0 and 255")}
	}
	if c.GridMargins < 0 || c.GridMargins > 255 {
		return &ValidationError{Path: "grid_margins", Err: fmt.Errorf("grid_margins must be between 0 and 255")}
	}
	if len(c.Profiles) == 0 {
		return &ValidationError{Path: "profiles", Err: fmt.Errorf("profiles must not be empty")}
	}
	if len(c.Profiles) > MaxProfiles {
		return &ValidationError{Path: "profiles", Err: fmt.Errorf("at most %d profiles are supported", MaxProfiles)}
	}
	seen := make(map[string]struct{}, len(c.Profiles))
	for _, name := range c.Profiles {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "profiles", Err: fmt.Errorf("profiles contains an empty name")}
		}
		// Layout keys are "monitor:profile".
		if strings.Contains(name, ":") {
			return &ValidationError{Path: "profiles", Err: fmt.Errorf("profile %q must not contain ':'", name)}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Path: "profiles", Err: fmt.Errorf("duplicate profile %q", name)}
		}
		seen[name] = struct{}{}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}
