package engine

import (
	"sync"
	"time"
)

// watcher runs fn on a fixed interval until stopped. The interval and
// teardown are explicit configuration rather than an implicit timer so
// a torn-down editor never leaves a poll running behind it.
type watcher struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func newWatcher(interval time.Duration, fn func()) *watcher {
	w := &watcher{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case <-w.ticker.C:
				fn()
			}
		}
	}()
	return w
}

// stop halts the ticker and waits for the loop to exit. Safe to call
// more than once.
func (w *watcher) stop() {
	w.once.Do(func() {
		w.ticker.Stop()
		close(w.done)
	})
	w.wg.Wait()
}
