package coordinator

import (
	"time"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/google/uuid"
)

// Listener is a session-scoped producer. Stop must be safe to call more
// than once and must not block on the coordinator.
type Listener interface {
	Stop()
}

// Spawner starts the session-scoped listeners. Each call starts exactly one
// listener, which posts to out until it is stopped.
type Spawner interface {
	// SpawnGridWindow creates the picker window, unmapped, and posts
	// GridWindow once it exists.
	SpawnGridWindow(session uuid.UUID, bounds geometry.Rect, out Poster) Listener
	// SpawnPreviewWindow creates the preview overlay and posts PreviewWindow.
	SpawnPreviewWindow(session uuid.UUID, out Poster) Listener
	// SpawnForegroundHook posts ActiveWindowChange on focus changes.
	SpawnForegroundHook(session uuid.UUID, out Poster) Listener
	// SpawnMonitorPoller posts MonitorChange when the active monitor is no
	// longer monitor.
	SpawnMonitorPoller(session uuid.UUID, monitor string, out Poster) Listener
}

// session is one open-to-close picker lifecycle.
type session struct {
	id        uuid.UUID
	quick     bool
	started   time.Time
	listeners []Listener
	watchdog  *time.Timer
}

func newSession(quick bool) *session {
	return &session{id: uuid.New(), quick: quick, started: time.Now()}
}

func (s *session) add(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// stop signals every listener of the session exactly once.
func (s *session) stop() {
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	listeners := s.listeners
	s.listeners = nil
	for _, l := range listeners {
		l.Stop()
	}
}
