package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value of a top-level key and where it came
// from.
//
// Supported keys:
//
//	margins
//	window_padding
//	grid_margins
//	hotkey
//	hotkey_quick_resize
//	hotkey_maximize_toggle
//	auto_start
//	profiles
//	profiles.<index>
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	key, _, _ := strings.Cut(path, ".")
	if src, ok := res.Sources[key]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	key, rest, nested := strings.Cut(path, ".")
	if nested && key != "profiles" {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch key {
	case "margins":
		return cfg.Margins, nil
	case "window_padding":
		return cfg.WindowPadding, nil
	case "grid_margins":
		return cfg.GridMargins, nil
	case "hotkey":
		return cfg.Hotkey, nil
	case "hotkey_quick_resize":
		return cfg.HotkeyQuickResize, nil
	case "hotkey_maximize_toggle":
		return cfg.HotkeyMaximizeToggle, nil
	case "auto_start":
		return cfg.AutoStart, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "profiles":
		if !nested {
			return cfg.Profiles, nil
		}
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || i >= len(cfg.Profiles) {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.Profiles[i], nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
