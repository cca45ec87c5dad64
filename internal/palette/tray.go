package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/gridsnap/internal/ipc"
)

const profileActionPrefix = "profile:"

// Controller is the daemon surface the menu drives.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	Open() error
	Quick() error
	Maximize() error
	SetProfile(name string) error
	SetAutoStart(enabled bool) error
	Exit() error
}

// Tray is the gridsnap menu: profile selection, picker actions, the
// autostart toggle, the config file, about and exit.
type Tray struct {
	Backend    Backend
	Controller Controller
	Profiles   []string
	AutoStart  bool
	ConfigPath string
	About      string
	// OpenFile opens the config file in the user's editor.
	OpenFile func(path string) error
}

// Items builds the menu for the daemon state st.
func (t *Tray) Items(st *ipc.StatusData) []Item {
	items := []Item{{Label: "Profiles", IsHeader: true}}
	for _, p := range t.Profiles {
		items = append(items, Item{
			Label:    p,
			Action:   profileActionPrefix + p,
			IsActive: st != nil && st.Profile == p,
		})
	}

	autostart := "off"
	if t.AutoStart {
		autostart = "on"
	}
	items = append(items,
		Item{Label: "gridsnap", IsHeader: true},
		Item{Label: "Open grid", Action: "open", Icon: "view-grid"},
		Item{Label: "Quick resize", Action: "quick", Icon: "view-grid"},
		Item{Label: "Toggle maximize", Action: "maximize", Icon: "window-maximize"},
		Item{Label: "Start at login: " + autostart, Action: "autostart", Icon: "system-run"},
		Item{Label: "Edit config", Action: "config", Icon: "document-edit"},
		Item{Label: "About", Action: "about", Icon: "help-about"},
		Item{Label: "Exit", Action: "exit", Icon: "application-exit"},
	)
	return items
}

// Run shows the menu once and performs the selected action. A cancelled
// menu is not an error.
func (t *Tray) Run() error {
	st, err := t.Controller.GetStatus()
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%s · %s · %dx%d", st.Monitor, st.Profile, st.Rows, st.Columns)
	item, err := t.Backend.Show("gridsnap", t.Items(st), message)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return t.dispatch(item)
}

func (t *Tray) dispatch(item Item) error {
	if name, ok := strings.CutPrefix(item.Action, profileActionPrefix); ok {
		return t.Controller.SetProfile(name)
	}

	switch item.Action {
	case "open":
		return t.Controller.Open()
	case "quick":
		return t.Controller.Quick()
	case "maximize":
		return t.Controller.Maximize()
	case "autostart":
		return t.Controller.SetAutoStart(!t.AutoStart)
	case "config":
		if t.OpenFile == nil {
			return fmt.Errorf("no way to open %s", t.ConfigPath)
		}
		return t.OpenFile(t.ConfigPath)
	case "about":
		_, err := t.Backend.Show("about", []Item{{Label: t.About}}, "")
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		return err
	case "exit":
		return t.Controller.Exit()
	case "":
		// Headers on launchers that cannot make rows non-selectable.
		return nil
	default:
		return fmt.Errorf("unknown menu action %q", item.Action)
	}
}
