// Package listeners runs the session-scoped producers that feed the
// coordinator: the picker and preview windows, the foreground hook and the
// monitor poller.
package listeners

import (
	"sync"
	"time"

	"github.com/1broseidon/gridsnap/internal/coordinator"
)

// DefaultPollInterval is how often the monitor poller samples the pointer.
const DefaultPollInterval = 20 * time.Millisecond

// stopper implements coordinator.Listener. The cleanup runs once, however
// often Stop is called.
type stopper struct {
	once    sync.Once
	done    chan struct{}
	cleanup func()
}

func newStopper(cleanup func()) *stopper {
	return &stopper{done: make(chan struct{}), cleanup: cleanup}
}

// Stop signals the listener to finish.
func (s *stopper) Stop() {
	s.once.Do(func() {
		close(s.done)
		if s.cleanup != nil {
			s.cleanup()
		}
	})
}

// Done is closed once Stop was called.
func (s *stopper) Done() <-chan struct{} {
	return s.done
}

// stopped reports whether Stop was called.
func (s *stopper) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// MonitorSource names the monitor the picker should be on.
type MonitorSource func() (string, error)

// MonitorPoller posts MonitorChange whenever the active monitor differs
// from the last one seen.
type MonitorPoller struct {
	*stopper
}

// StartMonitorPoller starts polling current until stopped. monitor is the
// monitor the session opened on.
func StartMonitorPoller(current MonitorSource, monitor string, interval time.Duration, out coordinator.Poster) *MonitorPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &MonitorPoller{stopper: newStopper(nil)}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		previous := monitor
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
			}

			name, err := current()
			if err != nil || name == "" || name == previous {
				continue
			}
			previous = name
			out.Post(coordinator.MonitorChange{Monitor: name})
		}
	}()

	return p
}
