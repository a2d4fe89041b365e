package selector

import (
	"io"
	"iter"
)

// Reader is a pushback buffer over a sequence of values. Values given to
// Unread are returned, last in first out, before the reader resumes pulling
// values from its source.
type Reader[T any] struct {
	next func() (T, bool, error)
	stop func()

	stack  []T
	err    error
	closed bool
}

func NewReader[T any](seq iter.Seq[T]) *Reader[T] {
	next, stop := iter.Pull(seq)
	return &Reader[T]{
		next: func() (T, bool, error) {
			v, ok := next()
			return v, ok, nil
		},
		stop: stop,
	}
}

// NewReaderErr creates a Reader from a sequence that can fail. The first
// error produced by seq is returned by Read once every value before it has
// been consumed.
func NewReaderErr[T any](seq iter.Seq2[T, error]) *Reader[T] {
	next, stop := iter.Pull2(seq)
	return &Reader[T]{
		next: func() (T, bool, error) {
			v, err, ok := next()
			return v, ok, err
		},
		stop: stop,
	}
}

func (r *Reader[T]) Peek() (T, error) {
	var zero T
	if err := r.fill(); err != nil {
		return zero, err
	}
	return r.stack[len(r.stack)-1], nil
}

func (r *Reader[T]) Read() (T, error) {
	var zero T
	if err := r.fill(); err != nil {
		return zero, err
	}
	n := len(r.stack) - 1
	v := r.stack[n]
	r.stack = r.stack[:n]
	return v, nil
}

func (r *Reader[T]) Unread(v T) error {
	if r.closed {
		return ErrDisposed
	}
	r.stack = append(r.stack, v)
	return nil
}

func (r *Reader[T]) HasMore() bool {
	if r.closed {
		return false
	}
	if len(r.stack) > 0 {
		return true
	}
	return r.fill() != io.EOF
}

// All enumerates the remaining values. Values are consumed through Read so
// that the reader and the enumeration never disagree on what is left.
func (r *Reader[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Read()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

func (r *Reader[T]) Close() error {
	if r.closed {
		return ErrDisposed
	}
	r.closed = true
	r.stack = nil
	r.stop()
	return nil
}

func (r *Reader[T]) fill() error {
	if r.closed {
		return ErrDisposed
	}
	if len(r.stack) > 0 {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	v, ok, err := r.next()
	if err != nil {
		r.err = err
		return err
	}
	if !ok {
		r.err = io.EOF
		return io.EOF
	}
	r.stack = append(r.stack, v)
	return nil
}
