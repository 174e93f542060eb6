// Package resource provides single-assignment handles for values that
// are produced asynchronously, such as decoded images arriving from
// background loader workers. A handle starts out pending and settles
// exactly once, either with a value or with an error. Settled handles
// never change again.
package resource

import (
	"context"
	"errors"
	"sync"
)

var ErrNotReady = errors.New("resource is not ready yet")

type State uint8

const (
	StatePending State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Resource is safe for concurrent use. Producers settle it with
// Complete or Fail; consumers poll TryGet or block on Wait.
type Resource[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	value T
	err   error
	state State
}

// New returns a pending resource to be settled later by a producer.
func New[T any]() *Resource[T] {
	return &Resource[T]{
		done: make(chan struct{}),
	}
}

// Of returns a resource that is ready immediately.
func Of[T any](value T) *Resource[T] {
	r := &Resource[T]{
		done:  make(chan struct{}),
		value: value,
		state: StateReady,
	}
	close(r.done)
	return r
}

// Fault returns a resource that has already failed.
func Fault[T any](err error) *Resource[T] {
	r := &Resource[T]{
		done:  make(chan struct{}),
		err:   err,
		state: StateFailed,
	}
	close(r.done)
	return r
}

// Complete settles the resource with a value. Calls after the first
// settle are ignored.
func (r *Resource[T]) Complete(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return
	}
	r.value = value
	r.state = StateReady
	close(r.done)
}

// Fail settles the resource with an error. Calls after the first
// settle are ignored.
func (r *Resource[T]) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return
	}
	r.err = err
	r.state = StateFailed
	close(r.done)
}

// TryGet returns the value if the resource is ready, ErrNotReady if it
// is still pending, or the settle error if it failed. It never blocks.
func (r *Resource[T]) TryGet() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case StateReady:
		return r.value, nil
	case StateFailed:
		var zero T
		return zero, r.err
	}
	var zero T
	return zero, ErrNotReady
}

// Wait blocks until the resource settles or the context is cancelled.
func (r *Resource[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.TryGet()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the resource settles, ready or failed.
func (r *Resource[T]) Done() <-chan struct{} {
	return r.done
}

func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Map derives a new resource by transforming the input's value once it
// settles. Errors pass through untransformed. The transform runs on a
// dedicated goroutine, not on a worker, so transforms may themselves
// wait on other resources without starving the pool.
func Map[In, Out any](in *Resource[In], f func(In) (Out, error)) *Resource[Out] {
	out := New[Out]()
	go func() {
		<-in.Done()
		value, err := in.TryGet()
		if err != nil {
			out.Fail(err)
			return
		}
		mapped, err := f(value)
		if err != nil {
			out.Fail(err)
			return
		}
		out.Complete(mapped)
	}()
	return out
}

// Join waits for all inputs of the same type and collects their values
// in order. The first input error fails the joined resource.
func Join[T any](inputs ...*Resource[T]) *Resource[[]T] {
	out := New[[]T]()
	go func() {
		values := make([]T, len(inputs))
		for i, in := range inputs {
			<-in.Done()
			value, err := in.TryGet()
			if err != nil {
				out.Fail(err)
				return
			}
			values[i] = value
		}
		out.Complete(values)
	}()
	return out
}
