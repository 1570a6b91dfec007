package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityState_TouchIsMonotonic(t *testing.T) {
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	state := NewActivityState(base)

	state.Touch(base.Add(5 * time.Minute))
	assert.Equal(t, base.Add(5*time.Minute), state.Last())

	// An out-of-order notification never moves the clock backwards.
	state.Touch(base.Add(2 * time.Minute))
	assert.Equal(t, base.Add(5*time.Minute), state.Last())
}

func TestActivityState_ResetIsUnconditional(t *testing.T) {
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	state := NewActivityState(base.Add(time.Hour))

	state.Reset(base)
	assert.Equal(t, base, state.Last())
}

func TestActivityState_ConcurrentAccess(t *testing.T) {
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	state := NewActivityState(base)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				state.Touch(base.Add(time.Duration(offset*1000+j) * time.Millisecond))
				_ = state.Last()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, base.Add(3999*time.Millisecond), state.Last())
}
