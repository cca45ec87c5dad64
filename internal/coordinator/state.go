package coordinator

// State is the coordinator's position in the picker lifecycle.
type State int

const (
	// Idle means no overlays are open.
	Idle State = iota
	// Opening means a session was started and its windows are being created.
	Opening
	// Picking means the picker and preview are visible.
	Picking
	// QuickPicking is Picking that closes after the first placement.
	QuickPicking
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opening:
		return "opening"
	case Picking:
		return "picking"
	case QuickPicking:
		return "quick-picking"
	default:
		return "unknown"
	}
}

func (s State) picking() bool {
	return s == Picking || s == QuickPicking
}
