package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is how often the cached time is refreshed. Read deadlines don't need to be
// more precise than that.
const Resolution = 500 * time.Millisecond

var millis = new(atomic.Int64)

// Now returns the cached wall-clock time, lagging behind the real one by at most Resolution.
func Now() time.Time {
	ms := millis.Load()
	return time.UnixMilli(ms)
}

func init() {
	// the ticker goroutine may start late, so the first value must be there before any caller
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}
