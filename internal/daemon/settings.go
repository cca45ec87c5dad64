package daemon

import (
	"slices"
	"time"

	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/ipc"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/charmbracelet/log"
)

// Margins maps the configured spacings onto the grid.
func Margins(cfg *config.Config) grid.Margins {
	return grid.Margins{
		Grid:   cfg.GridMargins,
		Zone:   cfg.Margins,
		Border: cfg.WindowPadding,
	}
}

// Settings maps a config onto the coordinator settings.
func Settings(cfg *config.Config) coordinator.Settings {
	return coordinator.Settings{
		Margins:  Margins(cfg),
		Profiles: slices.Clone(cfg.Profiles),
	}
}

// StartProfile is the profile the daemon opens with: the first configured
// one, bound to F1.
func StartProfile(cfg *config.Config) string {
	if len(cfg.Profiles) > 0 && cfg.Profiles[0] != "" {
		return cfg.Profiles[0]
	}
	return layoutstore.DefaultProfile
}

// LogLevel returns the configured level, falling back to info.
func LogLevel(cfg *config.Config) log.Level {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// hotkeysChanged reports whether a reload touched any hotkey. Hotkeys are
// grabbed once at startup.
func hotkeysChanged(old, updated *config.Config) bool {
	return old.Hotkey != updated.Hotkey ||
		old.HotkeyQuickResize != updated.HotkeyQuickResize ||
		old.HotkeyMaximizeToggle != updated.HotkeyMaximizeToggle
}

type statusPaths struct {
	config  string
	layouts string
}

func statusData(st coordinator.Status, paths statusPaths, uptime time.Duration) ipc.StatusData {
	return ipc.StatusData{
		State:         st.State.String(),
		Session:       st.Session,
		Monitor:       st.Monitor,
		Profile:       st.Profile,
		Rows:          st.Rows,
		Columns:       st.Columns,
		ActiveWindow:  uint32(st.ActiveWindow),
		ConfigPath:    paths.config,
		LayoutsPath:   paths.layouts,
		UptimeSeconds: int64(uptime / time.Second),
	}
}
