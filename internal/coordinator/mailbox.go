package coordinator

import (
	"context"
	"sync"
)

// Poster accepts messages without blocking.
type Poster interface {
	Post(Message)
}

// Mailbox is an unbounded multi-producer, single-consumer queue. Post never
// blocks, and messages from one producer are received in the order posted.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Message
	closed bool
	ready  chan struct{}
}

// NewMailbox returns an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Post enqueues msg. Messages posted after Close are dropped.
func (m *Mailbox) Post(msg Message) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Receive blocks until a message is available or ctx is done.
func (m *Mailbox) Receive(ctx context.Context) (Message, bool) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			msg := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return msg, true
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, false
		case <-m.ready:
		}
	}
}

// Len returns the number of queued messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close drops queued messages and rejects further posts.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.queue = nil
	m.mu.Unlock()
}
