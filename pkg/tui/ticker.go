package tui

import "time"

// newTicker returns a channel that receives a tick every interval. stop
// must be called to release the underlying timer.
func newTicker(interval time.Duration) (ch <-chan time.Time, stop func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
