package save

import (
	"context"
	"log"
	"sync"
)

// AsyncStore is a write-behind wrapper. Save returns immediately; a single
// goroutine writes the latest blob of each key to the backing store.
// Writes to the same key that queue up before the writer gets to them are
// collapsed into the newest one.
type AsyncStore struct {
	backing Store
	onError func(key string, err error)

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	busy    bool
	idle    *sync.Cond
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewAsyncStore starts the writer goroutine. onError may be nil, in which
// case failures are logged.
func NewAsyncStore(backing Store, onError func(key string, err error)) *AsyncStore {
	if onError == nil {
		onError = func(key string, err error) {
			log.Printf("save: write %s: %v", key, err)
		}
	}
	a := &AsyncStore{
		backing: backing,
		onError: onError,
		pending: map[string][]byte{},
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	a.idle = sync.NewCond(&a.mu)
	go a.run()
	return a
}

// Load returns a pending blob if one is queued, otherwise it reads through.
func (a *AsyncStore) Load(key string) ([]byte, error) {
	a.mu.Lock()
	if data, ok := a.pending[key]; ok {
		a.mu.Unlock()
		return append([]byte(nil), data...), nil
	}
	a.mu.Unlock()
	return a.backing.Load(key)
}

func (a *AsyncStore) Save(key string, data []byte) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return a.backing.Save(key, data)
	}
	if _, ok := a.pending[key]; !ok {
		a.order = append(a.order, key)
	}
	a.pending[key] = append([]byte(nil), data...)
	select {
	case a.wake <- struct{}{}:
	default:
	}
	a.mu.Unlock()
	return nil
}

func (a *AsyncStore) run() {
	defer close(a.done)
	for range a.wake {
		for {
			a.mu.Lock()
			if len(a.order) == 0 {
				a.busy = false
				a.idle.Broadcast()
				a.mu.Unlock()
				break
			}
			key := a.order[0]
			a.order = a.order[1:]
			data := a.pending[key]
			delete(a.pending, key)
			a.busy = true
			a.mu.Unlock()

			if err := a.backing.Save(key, data); err != nil {
				a.onError(key, err)
			}
		}
	}
}

// Flush blocks until every queued write has reached the backing store or
// ctx is done.
func (a *AsyncStore) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	go func() {
		a.mu.Lock()
		for len(a.order) > 0 || a.busy {
			a.idle.Wait()
		}
		a.mu.Unlock()
		close(flushed)
	}()
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes and stops the writer. Later saves go straight to the
// backing store.
func (a *AsyncStore) Close(ctx context.Context) error {
	err := a.Flush(ctx)
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return err
	}
	a.closed = true
	a.mu.Unlock()
	close(a.wake)
	<-a.done
	return err
}
