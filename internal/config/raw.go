package config

// RawConfig mirrors the config file. Nil fields were not set and keep their
// defaults.
type RawConfig struct {
	Margins       *int `yaml:"margins"`
	WindowPadding *int `yaml:"window_padding"`
	GridMargins   *int `yaml:"grid_margins"`

	Hotkey               *string `yaml:"hotkey"`
	HotkeyQuickResize    *string `yaml:"hotkey_quick_resize"`
	HotkeyMaximizeToggle *string `yaml:"hotkey_maximize_toggle"`

	AutoStart *bool    `yaml:"auto_start"`
	Profiles  []string `yaml:"profiles"`
	LogLevel  *string  `yaml:"log_level"`
}
