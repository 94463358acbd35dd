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

// seqBatch bounds how many elements SendSeq buffers per bulk transfer.
const seqBatch = 64

// Sender is a producer handle of a channel.
//
// A Sender of a Multi or HeadTailSync producer role may be shared between
// goroutines or cloned; a Sender of a Single role must be used by one
// goroutine only.
type Sender[T any] struct {
	r      *ring[T]
	closed atomix.Uint64
}

// TrySend sends v without blocking.
// Returns nil on success, ErrFull if no slot is free, ErrClosed if every
// receiver is gone or the handle was closed.
func (tx *Sender[T]) TrySend(v T) error {
	if tx.closed.LoadRelaxed() != 0 {
		return ErrClosed
	}
	one := [1]T{v}
	_, err := tx.r.enqueue(one[:], true)
	return err
}

// TrySendBulk sends all of items or nothing.
//
// Returns len(items) on success. When fewer slots are free than
// requested, returns ErrFull if none is free and ErrNotEnoughSpace
// otherwise; in both cases no element was sent. A request larger than the
// capacity can never succeed.
func (tx *Sender[T]) TrySendBulk(items []T) (int, error) {
	if tx.closed.LoadRelaxed() != 0 {
		return 0, ErrClosed
	}
	return tx.r.enqueue(items, true)
}

// TrySendBurst sends as many leading elements of items as there are free
// slots and returns the count. Returns ErrFull only if no slot was free.
func (tx *Sender[T]) TrySendBurst(items []T) (int, error) {
	if tx.closed.LoadRelaxed() != 0 {
		return 0, ErrClosed
	}
	return tx.r.enqueue(items, false)
}

// Send sends v, waiting with [iox.Backoff] while the channel is full.
//
// Returns ErrClosed if the channel closes, or ctx.Err() if ctx is done
// first. The context is checked between attempts only; an attempt that
// reserved slots always completes.
func (tx *Sender[T]) Send(ctx context.Context, v T) error {
	backoff := iox.Backoff{}
	for {
		err := tx.TrySend(v)
		if !IsWouldBlock(err) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		backoff.Wait()
	}
}

// SendAll sends every element of items in order, in bursts, waiting while
// the channel is full. Returns the number of elements sent, which is less
// than len(items) only together with an error.
func (tx *Sender[T]) SendAll(ctx context.Context, items []T) (int, error) {
	backoff := iox.Backoff{}
	sent := 0
	for sent < len(items) {
		n, err := tx.TrySendBurst(items[sent:])
		sent += n
		if err == nil {
			backoff.Reset()
			continue
		}
		if !IsWouldBlock(err) {
			return sent, err
		}
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		backoff.Wait()
	}
	return sent, nil
}

// SendSeq sends every element produced by seq, batching them so each
// reservation moves up to 64 elements. Returns the number sent.
func (tx *Sender[T]) SendSeq(ctx context.Context, seq iter.Seq[T]) (int, error) {
	batch := make([]T, 0, min(tx.Cap(), seqBatch))
	total := 0
	flush := func() error {
		n, err := tx.SendAll(ctx, batch)
		total += n
		clear(batch)
		batch = batch[:0]
		return err
	}
	for v := range seq {
		batch = append(batch, v)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Clone returns a new Sender on the same channel.
//
// Returns ErrExclusive if the producer role is Single, ErrClosed if this
// handle or every producer is closed.
func (tx *Sender[T]) Clone() (*Sender[T], error) {
	if tx.closed.LoadAcquire() != 0 {
		return nil, ErrClosed
	}
	if tx.r.prod.mode == Single {
		return nil, ErrExclusive
	}
	if err := tx.r.register(true); err != nil {
		return nil, err
	}
	return &Sender[T]{r: tx.r}, nil
}

// Close releases the handle. Closing the last Sender lets receivers
// observe ErrClosed after draining. Returns ErrClosed if already closed.
//
// Close must not race with operations on the same handle.
func (tx *Sender[T]) Close() error {
	if !tx.closed.CompareAndSwapAcqRel(0, 1) {
		return ErrClosed
	}
	tx.r.unregister(true)
	return nil
}

// Cap returns the channel capacity.
func (tx *Sender[T]) Cap() int {
	return int(tx.r.capacity)
}

// State returns a snapshot of the channel counters.
func (tx *Sender[T]) State() State {
	return tx.r.state()
}
