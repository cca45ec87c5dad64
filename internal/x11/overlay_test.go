package x11

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestOverlay_FillAfterDestroyDoesNothing(t *testing.T) {
	// No connection: painting would panic.
	o := &Overlay{Window: 7, gc: 8}
	assert.True(t, o.release())

	o.Fill([]FilledRect{{Rect: geometry.Rect{Width: 10, Height: 10}, Color: ColorTileIdle}})
	o.Destroy()

	assert.Equal(t, xproto.Window(7), o.Window)
	assert.Equal(t, xproto.Gcontext(8), o.gc)
}

func TestOverlay_ReleaseRacesWithFill(t *testing.T) {
	o := &Overlay{Window: 7, gc: 8}

	var (
		wg       sync.WaitGroup
		released atomic.Int32
	)
	for n := 0; n < 8; n++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			o.Fill(nil)
		}()
		go func() {
			defer wg.Done()
			if o.release() {
				released.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, released.Load())
	assert.Equal(t, xproto.Window(7), o.Window)
}
