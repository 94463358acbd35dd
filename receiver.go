// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import (
	"context"
	"iter"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Receiver is a consumer handle of a channel.
//
// A Receiver of a Multi or HeadTailSync consumer role may be shared between
// goroutines or cloned; a Receiver of a Single role must be used by one
// goroutine only.
type Receiver[T any] struct {
	r      *ring[T]
	closed atomix.Uint64
}

// TryRecv receives one element without blocking.
// Returns ErrEmpty if nothing is published, ErrClosed once every sender is
// gone and the channel is drained, or if the handle was closed.
func (rx *Receiver[T]) TryRecv() (T, error) {
	var one [1]T
	if rx.closed.LoadRelaxed() != 0 {
		return one[0], ErrClosed
	}
	_, err := rx.r.dequeue(one[:], true)
	return one[0], err
}

// TryRecvBulk fills dst completely or receives nothing.
// Returns ErrEmpty if nothing is published and ErrNotEnoughItems if fewer
// than len(dst) elements are. Once every sender is gone, a shortfall is
// reported as ErrNotEnoughItemsClosed instead.
func (rx *Receiver[T]) TryRecvBulk(dst []T) (int, error) {
	if rx.closed.LoadRelaxed() != 0 {
		return 0, ErrClosed
	}
	return rx.r.dequeue(dst, true)
}

// TryRecvBurst receives up to len(dst) elements into the front of dst and
// returns the count. Returns ErrEmpty only if nothing was published.
func (rx *Receiver[T]) TryRecvBurst(dst []T) (int, error) {
	if rx.closed.LoadRelaxed() != 0 {
		return 0, ErrClosed
	}
	return rx.r.dequeue(dst, false)
}

// Recv receives one element, waiting with [iox.Backoff] while the channel
// is empty. Returns ErrClosed once the channel is closed and drained, or
// ctx.Err() if ctx is done first.
func (rx *Receiver[T]) Recv(ctx context.Context) (T, error) {
	backoff := iox.Backoff{}
	for {
		v, err := rx.TryRecv()
		if !IsWouldBlock(err) {
			return v, err
		}
		if err := ctx.Err(); err != nil {
			return v, err
		}
		backoff.Wait()
	}
}

// RecvBurst waits until at least one element is published, then receives
// up to len(dst) elements. Returns the count.
func (rx *Receiver[T]) RecvBurst(ctx context.Context, dst []T) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	backoff := iox.Backoff{}
	for {
		n, err := rx.TryRecvBurst(dst)
		if !IsWouldBlock(err) {
			return n, err
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		backoff.Wait()
	}
}

// TryRecvBulkValues reserves exactly n published elements and returns a
// view that moves them out lazily. Fails like TryRecvBulk.
//
// The reservation is held until the view is exhausted or closed. Until
// then, later reservations of the consumer role cannot be published, so
// the goroutine holding the view must finish it before receiving again.
func (rx *Receiver[T]) TryRecvBulkValues(n int) (*RecvValues[T], error) {
	if rx.closed.LoadRelaxed() != 0 {
		return nil, ErrClosed
	}
	return rx.r.values(n, true)
}

// TryRecvBurstValues reserves up to n published elements and returns a
// view that moves them out lazily. Fails like TryRecvBurst.
func (rx *Receiver[T]) TryRecvBurstValues(n int) (*RecvValues[T], error) {
	if rx.closed.LoadRelaxed() != 0 {
		return nil, ErrClosed
	}
	return rx.r.values(n, false)
}

// Drain returns a sequence that receives elements one by one until the
// channel reports empty or closed. Breaking out of the loop leaves the
// remaining elements in the channel.
func (rx *Receiver[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := rx.TryRecv()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Clone returns a new Receiver on the same channel.
//
// Returns ErrExclusive if the consumer role is Single, ErrClosed if this
// handle or every consumer is closed.
func (rx *Receiver[T]) Clone() (*Receiver[T], error) {
	if rx.closed.LoadAcquire() != 0 {
		return nil, ErrClosed
	}
	if rx.r.cons.mode == Single {
		return nil, ErrExclusive
	}
	if err := rx.r.register(false); err != nil {
		return nil, err
	}
	return &Receiver[T]{r: rx.r}, nil
}

// Close releases the handle. Once the last Receiver (and RecvValues) is
// closed, senders get ErrClosed. Returns ErrClosed if already closed.
//
// Close must not race with operations on the same handle.
func (rx *Receiver[T]) Close() error {
	if !rx.closed.CompareAndSwapAcqRel(0, 1) {
		return ErrClosed
	}
	rx.r.unregister(false)
	return nil
}

// Cap returns the channel capacity.
func (rx *Receiver[T]) Cap() int {
	return int(rx.r.capacity)
}

// State returns a snapshot of the channel counters.
func (rx *Receiver[T]) State() State {
	return rx.r.state()
}
