package assets

import (
	"context"
	"fmt"
	"sync"
)

// Future is a value resolved exactly once. Later Resolve calls are ignored.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture creates an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve completes the future. Only the first call has any effect.
func (f *Future[T]) Resolve(v T, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result without blocking. ready is false until resolved.
func (f *Future[T]) Poll() (v T, ready bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Loader reads model metadata from a path.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// LoadAsync starts loading in a goroutine and returns its future.
func LoadAsync(ctx context.Context, l Loader, path string) *Future[*Model] {
	f := NewFuture[*Model]()
	go func() {
		m, err := l.Load(ctx, path)
		if err != nil {
			err = fmt.Errorf("loading model %q: %w", path, err)
		}
		f.Resolve(m, err)
	}()
	return f
}

// Ready returns a future already resolved with m.
func Ready(m *Model) *Future[*Model] {
	f := NewFuture[*Model]()
	f.Resolve(m, nil)
	return f
}
