// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import "context"

// Producer is the sending side of a channel.
//
// All Try methods are non-blocking. They return [ErrFull] (or
// [ErrNotEnoughSpace] for bulk requests) under backpressure and
// [ErrClosed] once no receiver is left.
type Producer[T any] interface {
	// TrySend sends one element.
	TrySend(v T) error

	// TrySendBulk sends every element of items or none of them.
	TrySendBulk(items []T) (int, error)

	// TrySendBurst sends as many elements of items as fit and reports
	// the count.
	TrySendBurst(items []T) (int, error)

	// Send retries TrySend until it succeeds, the channel closes or ctx
	// is done.
	Send(ctx context.Context, v T) error

	// Close releases the handle.
	Close() error
}

// Consumer is the receiving side of a channel.
//
// All Try methods are non-blocking. They return [ErrEmpty] (or
// [ErrNotEnoughItems] for bulk requests) when nothing is published and
// [ErrClosed] once no sender is left and every element was received.
type Consumer[T any] interface {
	// TryRecv receives one element.
	TryRecv() (T, error)

	// TryRecvBulk fills dst completely or receives nothing.
	TryRecvBulk(dst []T) (int, error)

	// TryRecvBurst receives up to len(dst) elements and reports the count.
	TryRecvBurst(dst []T) (int, error)

	// Recv retries TryRecv until it succeeds, the channel closes or ctx
	// is done.
	Recv(ctx context.Context) (T, error)

	// Close releases the handle.
	Close() error
}

var (
	_ Producer[int] = (*Sender[int])(nil)
	_ Consumer[int] = (*Receiver[int])(nil)
)

// State is a snapshot of a channel's counters and live handles.
//
// Positions are free-running and wrap at 2^32; differences are meaningful,
// absolute values are not. Fields are loaded one at a time, so a snapshot
// taken while handles are active may be mutually inconsistent.
type State struct {
	Capacity     int
	ProducerHead uint32 // Slots reserved by producers
	ProducerTail uint32 // Slots published to consumers
	ConsumerHead uint32 // Slots reserved by consumers
	ConsumerTail uint32 // Slots released back to producers
	Producers    int    // Live Sender handles
	Consumers    int    // Live Receiver and RecvValues handles
}

// Len returns the number of published elements not yet released by
// consumers.
func (s State) Len() int {
	return int(s.ProducerTail - s.ConsumerTail)
}

// InFlight returns the number of reserved but unpublished slots per role.
func (s State) InFlight() (producers, consumers int) {
	return int(s.ProducerHead - s.ProducerTail), int(s.ConsumerHead - s.ConsumerTail)
}
