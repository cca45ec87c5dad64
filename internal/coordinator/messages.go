package coordinator

import (
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/google/uuid"
)

// Message is anything delivered through the mailbox.
type Message interface {
	isMessage()
}

// HotkeyKind identifies which global hotkey fired.
type HotkeyKind int

const (
	HotkeyMain HotkeyKind = iota
	HotkeyQuickResize
	HotkeyMaximize
)

func (k HotkeyKind) String() string {
	switch k {
	case HotkeyMain:
		return "main"
	case HotkeyQuickResize:
		return "quick-resize"
	case HotkeyMaximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// Key is a picker key the coordinator reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyShift
	KeyControl
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
)

// FunctionIndex returns 0 for F1 through 5 for F6.
func (k Key) FunctionIndex() (int, bool) {
	if k < KeyF1 || k > KeyF6 {
		return 0, false
	}
	return int(k - KeyF1), true
}

type (
	// HotkeyPressed is sent by the global hotkey listener.
	HotkeyPressed struct{ Kind HotkeyKind }

	// InitializeWindows opens a picking session when idle.
	InitializeWindows struct{ Quick bool }

	// GridWindow reports that the picker window of a session exists.
	GridWindow struct {
		Session uuid.UUID
		Window  platform.WindowID
	}

	// PreviewWindow reports that the preview overlay of a session exists.
	PreviewWindow struct {
		Session uuid.UUID
		Window  platform.WindowID
	}

	// HighlightZone moves the preview overlay. The zero Rect hides it.
	HighlightZone struct{ Rect geometry.Rect }

	// TrackMouse arms the pointer-leave notification for a window.
	TrackMouse struct{ Window platform.WindowID }

	// MouseLeft disarms the pointer-leave notification and clears any hover.
	MouseLeft struct{}

	// ActiveWindowChange is sent by the foreground hook.
	ActiveWindowChange struct{ Window platform.WindowID }

	// MonitorChange is sent by the monitor poller.
	MonitorChange struct{ Monitor string }

	// ProfileChange selects another layout profile.
	ProfileChange struct{ Profile string }

	// CloseWindows ends the picking session.
	CloseWindows struct{}

	// Exit stops the coordinator.
	Exit struct{}

	// KeyChanged is a key press or release in the picker.
	KeyChanged struct {
		Key  Key
		Down bool
	}

	// PointerMoved is pointer motion inside the picker.
	PointerMoved struct{ Point geometry.Point }

	// ButtonPressed is a primary button press inside the picker.
	ButtonPressed struct{ Point geometry.Point }

	// ButtonReleased is a primary button release after a press in the picker.
	ButtonReleased struct{ Point geometry.Point }

	// PointerLeft is sent when the pointer leaves the picker.
	PointerLeft struct{}

	// SettingsChanged replaces the settings used by the next rebuild.
	SettingsChanged struct{ Settings Settings }

	// StatusRequest asks for a Status. Reply must have room for one value.
	StatusRequest struct{ Reply chan<- Status }

	openTimeout struct{ session uuid.UUID }
)

func (HotkeyPressed) isMessage()      {}
func (InitializeWindows) isMessage()  {}
func (GridWindow) isMessage()         {}
func (PreviewWindow) isMessage()      {}
func (HighlightZone) isMessage()      {}
func (TrackMouse) isMessage()         {}
func (MouseLeft) isMessage()          {}
func (ActiveWindowChange) isMessage() {}
func (MonitorChange) isMessage()      {}
func (ProfileChange) isMessage()      {}
func (CloseWindows) isMessage()       {}
func (Exit) isMessage()               {}
func (KeyChanged) isMessage()         {}
func (PointerMoved) isMessage()       {}
func (ButtonPressed) isMessage()      {}
func (ButtonReleased) isMessage()     {}
func (PointerLeft) isMessage()        {}
func (SettingsChanged) isMessage()    {}
func (StatusRequest) isMessage()      {}
func (openTimeout) isMessage()        {}
