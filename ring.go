// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// maxCapacity bounds capacity so that free-running uint32 positions can be
// compared by subtraction.
const maxCapacity = 1 << 31

// Handle population encoding: producers in the high half, consumers in the
// low half of one word.
const (
	producerOne = uint64(1) << 32
	consumerOne = uint64(1)
	roleLimit   = 1<<31 - 1
)

// ring is the shared state behind every Sender, Receiver and RecvValues of
// one channel. It is the sole owner of the counters and the cells.
type ring[T any] struct {
	_        cpu.CacheLinePad
	active   atomix.Uint64 // Live handles, see producerOne/consumerOne
	prod     headTail
	cons     headTail
	_        cpu.CacheLinePad
	data     storage[T]
	capacity uint32
	mask     uint32
}

func validCapacity(capacity int) bool {
	return capacity >= 1 && uint64(capacity) <= maxCapacity && capacity&(capacity-1) == 0
}

// newRing allocates a ring with all four counters at start and one live
// handle per role.
func newRing[T any](capacity int, pm, cm SyncMode, start uint32) (*ring[T], error) {
	if !validCapacity(capacity) {
		return nil, fmt.Errorf("%w: got %d", ErrCapacity, capacity)
	}
	r := &ring[T]{
		data:     newStorage[T](capacity),
		capacity: uint32(capacity),
		mask:     uint32(capacity - 1),
	}
	r.prod.mode = pm
	r.cons.mode = cm
	r.prod.reset(start)
	r.cons.reset(start)
	r.active.StoreRelease(producerOne | consumerOne)
	return r, nil
}

// request converts a slice length into a slot request. Lengths above
// capacity are clamped to capacity+1, which no reservation can satisfy in
// full, so bulk requests fail and burst requests take what is available.
func (r *ring[T]) request(n int) uint32 {
	return uint32(min(n, int(r.capacity)+1))
}

// enqueue reserves slots, copies items into them and publishes.
// With exact set, either every item is transferred or none is.
func (r *ring[T]) enqueue(items []T, exact bool) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if r.cons.finished() {
		return 0, ErrClosed
	}
	c, err := r.prod.moveHead(&r.cons, true, exact, r.capacity, r.request(len(items)))
	if err != nil {
		return 0, err
	}
	r.assertCounters()
	for i := range c.n {
		r.data.write((c.start+i)&r.mask, items[i])
		yieldPoint()
	}
	r.prod.publish(c)
	r.assertCounters()
	return int(c.n), nil
}

// dequeue reserves published slots, moves them into dst and publishes the
// freed slots back to producers.
func (r *ring[T]) dequeue(dst []T, exact bool) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	c, err := r.reserveRecv(r.request(len(dst)), exact)
	if err != nil {
		return 0, err
	}
	r.assertCounters()
	for i := range c.n {
		dst[i] = r.data.take((c.start + i) & r.mask)
		yieldPoint()
	}
	r.cons.publish(c)
	r.assertCounters()
	return int(c.n), nil
}

// reserveRecv reserves published slots. Once every producer is gone, an
// empty ring becomes ErrClosed and a bulk shortfall ErrNotEnoughItemsClosed.
func (r *ring[T]) reserveRecv(n uint32, exact bool) (claim, error) {
	c, err := r.cons.moveHead(&r.prod, false, exact, r.capacity, n)
	if (err == ErrEmpty || err == ErrNotEnoughItems) && r.prod.finished() {
		return r.reserveAfterFinish(n, exact)
	}
	return c, err
}

// reserveAfterFinish retries a reservation after observing that the
// producers are finished. The acquire on the finished flag makes every
// publication of every producer visible, so the retry sees the final tail.
//
//go:noinline
func (r *ring[T]) reserveAfterFinish(n uint32, exact bool) (claim, error) {
	c, err := r.cons.moveHead(&r.prod, false, exact, r.capacity, n)
	switch err {
	case ErrEmpty:
		return claim{}, ErrClosed
	case ErrNotEnoughItems:
		return claim{}, ErrNotEnoughItemsClosed
	}
	return c, err
}

// register adds a live handle to the role.
func (r *ring[T]) register(prod bool) error {
	one, shift := consumerOne, 0
	if prod {
		one, shift = producerOne, 32
	}
	for {
		old := r.active.LoadAcquire()
		switch n := uint32(old >> shift); {
		case n == 0:
			return ErrClosed
		case n >= roleLimit:
			if prod {
				return ErrTooManyProducers
			}
			return ErrTooManyConsumers
		}
		if r.active.CompareAndSwapAcqRel(old, old+one) {
			return nil
		}
	}
}

// unregister removes a live handle from the role. The last handle of a
// role marks it finished; the last handle of the ring tears it down.
func (r *ring[T]) unregister(prod bool) {
	one, role := consumerOne, &r.cons
	if prod {
		one, role = producerOne, &r.prod
	}
	for {
		old := r.active.LoadAcquire()
		next := old - one
		if !r.active.CompareAndSwapAcqRel(old, next) {
			continue
		}
		switch {
		case next == 0:
			r.teardown()
		case prod && next>>32 == 0, !prod && uint32(next) == 0:
			role.finish()
		}
		return
	}
}

// teardown drops every element still published but never received.
// Runs exactly once, after the last handle of the ring has gone.
//
//go:noinline
func (r *ring[T]) teardown() {
	r.prod.finish()
	r.cons.finish()
	tail := r.prod.loadTail()
	for pos := r.cons.loadTail(); pos != tail; pos++ {
		r.data.drop(pos & r.mask)
	}
	r.cons.reset(tail)
}

// state returns a snapshot of the counters. Fields are loaded one by one
// and may be mutually inconsistent while handles are active.
func (r *ring[T]) state() State {
	a := r.active.LoadAcquire()
	return State{
		Capacity:     int(r.capacity),
		ProducerHead: r.prod.loadHead(),
		ProducerTail: r.prod.loadTail(),
		ConsumerHead: r.cons.loadHead(),
		ConsumerTail: r.cons.loadTail(),
		Producers:    int(a >> 32),
		Consumers:    int(uint32(a)),
	}
}
