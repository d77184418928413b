package job

import (
	"sync"
	"time"
)

// Dispatcher runs fn on the goroutine that owns the callbacks, e.g. fyne.Do.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) {
	fn()
}

// TickerScheduler runs periodic tasks on time.Ticker goroutines and hands every
// tick to a Dispatcher.
type TickerScheduler struct {
	dispatch Dispatcher

	mx      sync.Mutex
	wg      sync.WaitGroup
	nextID  int
	cancels map[int]CancelFunc
	closed  bool
}

// NewTickerScheduler creates a scheduler, a nil dispatch runs ticks directly
func NewTickerScheduler(dispatch Dispatcher) *TickerScheduler {
	if dispatch == nil {
		dispatch = Direct
	}
	return &TickerScheduler{
		dispatch: dispatch,
		cancels:  make(map[int]CancelFunc),
	}
}

// Every implements Scheduler. Registrations after Close are never run.
func (t *TickerScheduler) Every(period time.Duration, fn func()) CancelFunc {
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	t.mx.Lock()
	if t.closed {
		t.mx.Unlock()
		stop()
		return stop
	}
	id := t.nextID
	t.nextID++
	t.cancels[id] = stop
	t.wg.Add(1)
	t.mx.Unlock()

	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				t.dispatch(fn)
			}
		}
	}()

	return func() {
		stop()
		t.mx.Lock()
		delete(t.cancels, id)
		t.mx.Unlock()
	}
}

// Active returns the number of registered tasks that were not cancelled
func (t *TickerScheduler) Active() int {
	t.mx.Lock()
	defer t.mx.Unlock()
	return len(t.cancels)
}

// Close cancels every task and waits for the ticker goroutines to exit
func (t *TickerScheduler) Close() {
	t.mx.Lock()
	t.closed = true
	cancels := t.cancels
	t.cancels = make(map[int]CancelFunc)
	t.mx.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	t.wg.Wait()
}
