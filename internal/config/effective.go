package config

import "fmt"

// ValidationError reports an invalid config value, with its location in the
// file when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Margins != nil {
		cfg.Margins = *raw.Margins
	}
	if raw.WindowPadding != nil {
		cfg.WindowPadding = *raw.WindowPadding
	}
	if raw.GridMargins != nil {
		cfg.GridMargins = *raw.GridMargins
	}
	if raw.Hotkey != nil {
		cfg.Hotkey = *raw.Hotkey
	}
	if raw.HotkeyQuickResize != nil {
		cfg.HotkeyQuickResize = *raw.HotkeyQuickResize
	}
	if raw.HotkeyMaximizeToggle != nil {
		cfg.HotkeyMaximizeToggle = *raw.HotkeyMaximizeToggle
	}
	if raw.AutoStart != nil {
		cfg.AutoStart = *raw.AutoStart
	}
	if raw.Profiles != nil {
		cfg.Profiles = append([]string(nil), raw.Profiles...)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}
