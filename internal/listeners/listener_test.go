package listeners

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/1broseidon/gridsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []coordinator.Message
}

func (r *recorder) Post(msg coordinator.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) messages() []coordinator.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]coordinator.Message(nil), r.msgs...)
}

func TestStopper_CleanupRunsOnce(t *testing.T) {
	var calls atomic.Int32
	s := newStopper(func() { calls.Add(1) })
	assert.False(t, s.stopped())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	assert.True(t, s.stopped())
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestMonitorPoller_PostsOnChange(t *testing.T) {
	var mu sync.Mutex
	current := "M1"
	source := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		return current, nil
	}

	out := &recorder{}
	p := StartMonitorPoller(source, "M1", time.Millisecond, out)
	defer p.Stop()

	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, out.messages())

	mu.Lock()
	current = "M2"
	mu.Unlock()

	require.Eventually(t, func() bool { return len(out.messages()) == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, []coordinator.Message{coordinator.MonitorChange{Monitor: "M2"}}, out.messages())
}

func TestMonitorPoller_IgnoresErrorsAndStops(t *testing.T) {
	var calls atomic.Int32
	source := func() (string, error) {
		calls.Add(1)
		return "", errors.New("no pointer")
	}

	out := &recorder{}
	p := StartMonitorPoller(source, "M1", time.Millisecond, out)
	require.Eventually(t, func() bool { return calls.Load() > 2 }, time.Second, time.Millisecond)
	p.Stop()
	p.Stop()

	time.Sleep(5 * time.Millisecond)
	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), after+1)
	assert.Empty(t, out.messages())
}

func TestKeyFromKeysym(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want coordinator.Key
	}{
		{0xff1b, coordinator.KeyEscape},
		{0xff51, coordinator.KeyLeft},
		{0xff52, coordinator.KeyUp},
		{0xff53, coordinator.KeyRight},
		{0xff54, coordinator.KeyDown},
		{0xffe1, coordinator.KeyShift},
		{0xffe2, coordinator.KeyShift},
		{0xffe3, coordinator.KeyControl},
		{0xffe4, coordinator.KeyControl},
		{0xffbe, coordinator.KeyF1},
		{0xffc3, coordinator.KeyF6},
		{0xffc4, coordinator.KeyOther},
		{'s', coordinator.KeyOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyFromKeysym(tt.sym), "keysym %#x", tt.sym)
	}
}

func TestPostMotion_ArmsTrackingFirst(t *testing.T) {
	r := &recorder{}
	postMotion(r, xproto.Window(100), 12, 34)

	assert.Equal(t, []coordinator.Message{
		coordinator.TrackMouse{Window: platform.WindowID(100)},
		coordinator.PointerMoved{Point: geometry.Point{X: 12, Y: 34}},
	}, r.messages())
}

func TestPaintTiles_Colors(t *testing.T) {
	g := grid.New(grid.Options{
		Entry:    layoutstore.Entry{Rows: 1, Columns: 3},
		Margins:  grid.DefaultMargins(),
		WorkArea: geometry.Rect{Width: 1920, Height: 1040},
	})
	a := g.TileArea(0, 0)
	g.SelectTile(geometry.Point{X: a.X + 1, Y: a.Y + 1})
	b := g.TileArea(0, 1)
	g.HighlightTiles(geometry.Point{X: b.X + 1, Y: b.Y + 1})

	rects := paintTiles(g.Snapshot())
	require.Len(t, rects, 3)
	assert.Equal(t, x11.FilledRect{Rect: a, Color: x11.ColorTileSelected}, rects[0])
	assert.Equal(t, x11.FilledRect{Rect: b, Color: x11.ColorTileHovered}, rects[1])
	assert.Equal(t, x11.ColorTileIdle, int(rects[2].Color))
}
