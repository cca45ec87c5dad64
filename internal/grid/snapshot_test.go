package grid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_ConsistentWhileMutated(t *testing.T) {
	g := newTestGrid(2, 2)

	var (
		wg   sync.WaitGroup
		done = make(chan struct{})
	)
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				s := g.Snapshot()
				if !assert.Len(t, s.Tiles, s.Layout.Rows) {
					return
				}
				for _, row := range s.Tiles {
					if !assert.Len(t, row, s.Layout.Columns) {
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		g.HighlightTiles(center(g, 0, 0))
		g.SelectTile(center(g, 1, 1))
		if i%2 == 0 {
			g.AddColumn()
			g.AddRow()
		} else {
			g.RemoveColumn()
			g.RemoveRow()
		}
		g.UnhighlightAllTiles()
	}
	close(done)
	wg.Wait()

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Columns())
}
