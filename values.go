// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import "iter"

// RecvValues is a reserved run of published elements that are moved out of
// the channel one at a time.
//
// A RecvValues counts as a live consumer until it is exhausted or closed,
// so the channel does not report ErrClosed to senders while one is open.
// Its slots are released to producers in one step when it finishes.
//
// A RecvValues is owned by one goroutine. That goroutine must exhaust or
// close it before it reserves anything else from the channel: later
// reservations of the consumer role wait for this one to be released.
type RecvValues[T any] struct {
	r        *ring[T]
	c        claim
	consumed uint32
	done     bool
}

// values reserves up to n published elements and wraps them in a view.
func (r *ring[T]) values(n int, exact bool) (*RecvValues[T], error) {
	if n <= 0 {
		return &RecvValues[T]{r: r, done: true}, nil
	}
	if err := r.register(false); err != nil {
		return nil, err
	}
	c, err := r.reserveRecv(r.request(n), exact)
	if err != nil {
		r.unregister(false)
		return nil, err
	}
	r.assertCounters()
	return &RecvValues[T]{r: r, c: c}, nil
}

// Len returns the number of elements not yet taken.
func (v *RecvValues[T]) Len() int {
	return int(v.c.n - v.consumed)
}

// Next moves the next element out of the view.
// Reports false once every element was taken; the reservation is released
// at that point.
func (v *RecvValues[T]) Next() (T, bool) {
	if v.consumed == v.c.n {
		v.release()
		var zero T
		return zero, false
	}
	x := v.r.data.take((v.c.start + v.consumed) & v.r.mask)
	v.consumed++
	if v.consumed == v.c.n {
		v.release()
	}
	return x, true
}

// All returns a sequence over the remaining elements. Breaking out of the
// loop keeps the rest reserved; call Close to discard it.
func (v *RecvValues[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := v.Next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Close discards the elements not yet taken and releases the reservation.
// Close is idempotent.
func (v *RecvValues[T]) Close() error {
	if v.done {
		return nil
	}
	for v.consumed < v.c.n {
		v.r.data.drop((v.c.start + v.consumed) & v.r.mask)
		v.consumed++
	}
	v.release()
	return nil
}

// release publishes the claim back to producers and drops the consumer
// registration. Runs once per view.
func (v *RecvValues[T]) release() {
	if v.done {
		return
	}
	v.done = true
	v.r.cons.publish(v.c)
	v.r.assertCounters()
	v.r.unregister(false)
}
