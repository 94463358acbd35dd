// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
// [ErrFull] and [ErrEmpty] wrap it, so callers that only care about
// backpressure can test for ErrWouldBlock with [IsWouldBlock].
var ErrWouldBlock = iox.ErrWouldBlock

var (
	// ErrFull indicates a send was rejected because no slot is free.
	//
	// ErrFull is a control flow signal, not a failure: retry once a
	// consumer has released slots.
	ErrFull = fmt.Errorf("ringchan: channel is full: %w", iox.ErrWouldBlock)

	// ErrEmpty indicates a receive found no published element.
	//
	// ErrEmpty is a control flow signal, not a failure: retry once a
	// producer has published.
	ErrEmpty = fmt.Errorf("ringchan: channel is empty: %w", iox.ErrWouldBlock)

	// ErrNotEnoughSpace is returned by bulk sends when some slots are free,
	// but fewer than requested. Nothing was transferred.
	// errors.Is(ErrNotEnoughSpace, ErrFull) reports true.
	ErrNotEnoughSpace = fmt.Errorf("%w: not enough space for all items", ErrFull)

	// ErrNotEnoughItems is returned by bulk receives when some elements are
	// published, but fewer than requested. Nothing was transferred.
	// errors.Is(ErrNotEnoughItems, ErrEmpty) reports true.
	ErrNotEnoughItems = fmt.Errorf("%w: not enough items", ErrEmpty)
)

var (
	// ErrClosed indicates the peer role has no live handles left, or the
	// handle itself was closed. It is permanent and must not be retried.
	//
	// For receivers, ErrClosed is only reported once every element that was
	// published before the last producer closed has been received.
	ErrClosed = errors.New("ringchan: channel is closed")

	// ErrNotEnoughItemsClosed is returned by bulk receives when every
	// producer has closed and fewer elements are left than requested.
	// Nothing was transferred. The same request can never succeed; retry
	// with a burst receive to take what is left.
	// errors.Is(ErrNotEnoughItemsClosed, ErrClosed) reports true.
	ErrNotEnoughItemsClosed = fmt.Errorf("%w: not enough items left", ErrClosed)

	// ErrCapacity indicates an invalid capacity at construction time.
	ErrCapacity = errors.New("ringchan: capacity must be a power of two in [1, 1<<31]")

	// ErrMode indicates an unknown SyncMode at construction time.
	ErrMode = errors.New("ringchan: unknown sync mode")

	// ErrExclusive is returned when cloning a handle whose role was built
	// in Single mode.
	ErrExclusive = errors.New("ringchan: handle is exclusive and cannot be cloned")

	// ErrTooManyProducers indicates the producer handle limit was reached.
	ErrTooManyProducers = errors.New("ringchan: too many producers")

	// ErrTooManyConsumers indicates the consumer handle limit was reached.
	ErrTooManyConsumers = errors.New("ringchan: too many consumers")
)

// IsWouldBlock reports whether err indicates the operation would block.
// True for [ErrFull], [ErrEmpty] and their bulk variants.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and [ErrWouldBlock].
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsClosed reports whether err is [ErrClosed] or wraps it.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// errUnavailable returns the error for a role that found nothing to reserve.
//
//go:noinline
func errUnavailable(prod bool) error {
	if prod {
		return ErrFull
	}
	return ErrEmpty
}

// errShort returns the error for an all-or-nothing request that could
// only be partially satisfied.
//
//go:noinline
func errShort(prod bool) error {
	if prod {
		return ErrNotEnoughSpace
	}
	return ErrNotEnoughItems
}
