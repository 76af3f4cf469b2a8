package async

import (
	"context"
	"time"
)

// Future is the eventual result of an Async call.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the future completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the future completes or ctx is done.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in a new goroutine.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

type outcome[U any] struct {
	index  int
	result U
	err    error
}

func collect[U any](futures []*Future[U]) <-chan outcome[U] {
	ch := make(chan outcome[U], len(futures))
	for i, f := range futures {
		go func() {
			res, err := f.Await()
			ch <- outcome[U]{index: i, result: res, err: err}
		}()
	}
	return ch
}

// WaitAll returns the results in input order, or the first error to occur.
// On error the remaining futures keep running; cancel their context to stop them.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	ch := collect(futures)
	for range futures {
		o := <-ch
		if o.err != nil {
			return nil, o.err
		}
		results[o.index] = o.result
	}
	return results, nil
}

// Result is the settled outcome of one future.
type Result[U any] struct {
	Value U
	Err   error
}

// WaitAllSettled waits for every future and returns their outcomes in input order.
func WaitAllSettled[U any](futures ...*Future[U]) []Result[U] {
	results := make([]Result[U], len(futures))
	for i, f := range futures {
		v, err := f.Await()
		results[i] = Result[U]{Value: v, Err: err}
	}
	return results
}
