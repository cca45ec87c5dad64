package coordinator

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_FIFO(t *testing.T) {
	m := NewMailbox()
	m.Post(ProfileChange{Profile: "a"})
	m.Post(ProfileChange{Profile: "b"})
	m.Post(CloseWindows{})
	require.Equal(t, 3, m.Len())

	ctx := context.Background()
	for _, want := range []Message{ProfileChange{Profile: "a"}, ProfileChange{Profile: "b"}, CloseWindows{}} {
		got, ok := m.Receive(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, m.Len())
}

func TestMailbox_ReceiveBlocksUntilPost(t *testing.T) {
	m := NewMailbox()
	got := make(chan Message, 1)
	go func() {
		msg, _ := m.Receive(context.Background())
		got <- msg
	}()

	select {
	case <-got:
		t.Fatal("Receive returned before anything was posted")
	case <-time.After(20 * time.Millisecond):
	}

	m.Post(Exit{})
	select {
	case msg := <-got:
		assert.Equal(t, Exit{}, msg)
	case <-time.After(time.Second):
		t.Fatal("Receive did not wake up")
	}
}

func TestMailbox_ReceiveHonorsContext(t *testing.T) {
	m := NewMailbox()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	msg, ok := m.Receive(ctx)
	assert.False(t, ok)
	assert.Nil(t, msg)
}

func TestMailbox_PostAfterCloseIsDropped(t *testing.T) {
	m := NewMailbox()
	m.Post(Exit{})
	m.Close()
	m.Post(CloseWindows{})
	assert.Equal(t, 0, m.Len())
}

func TestMailbox_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	const producers, perProducer = 8, 200

	m := NewMailbox()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				m.Post(MonitorChange{Monitor: string(rune('a'+p)) + ":" + strconv.Itoa(i)})
			}
		}(p)
	}
	wg.Wait()
	require.Equal(t, producers*perProducer, m.Len())

	next := make(map[byte]int)
	ctx := context.Background()
	for i := 0; i < producers*perProducer; i++ {
		msg, ok := m.Receive(ctx)
		require.True(t, ok)
		name := msg.(MonitorChange).Monitor
		producer := name[0]
		assert.Equal(t, string(rune(producer))+":"+strconv.Itoa(next[producer]), name)
		next[producer]++
	}
}
