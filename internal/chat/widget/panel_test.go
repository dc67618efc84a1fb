package widget

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_StartsClosed(t *testing.T) {
	var p Panel

	assert.False(t, p.IsOpen())
	assert.Equal(t, IconChat, p.Icon())
	assert.Equal(t, PanelState{Open: false, Icon: IconChat}, p.State())
}

func TestPanel_Toggle(t *testing.T) {
	var p Panel

	assert.True(t, p.Toggle())
	assert.Equal(t, IconClose, p.Icon())

	assert.False(t, p.Toggle())
	assert.Equal(t, IconChat, p.Icon())
}

func TestPanel_OpenCloseAreIdempotent(t *testing.T) {
	var p Panel

	p.Open()
	p.Open()
	assert.True(t, p.IsOpen())
	assert.Equal(t, PanelState{Open: true, Icon: IconClose}, p.State())

	p.Close()
	p.Close()
	assert.False(t, p.IsOpen())
}

func TestPanel_ConcurrentToggle(t *testing.T) {
	var p Panel
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Toggle()
		}()
	}
	wg.Wait()

	// an even number of toggles ends where it started
	assert.False(t, p.IsOpen())
}
