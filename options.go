// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

// Options configures channel creation.
type Options struct {
	// Per-role synchronization
	producers SyncMode
	consumers SyncMode

	// Exact capacity, must be a power of 2
	capacity int

	// Initial position of all four counters
	start uint32
}

// Builder creates channels with fluent configuration.
//
// Example:
//
//	// SPSC channel (plain load/store reservations on both sides)
//	tx, rx, err := ringchan.Build[Event](ringchan.New(1024).SingleProducer().SingleConsumer())
//
//	// MPMC channel (default, general purpose)
//	tx, rx, err := ringchan.Build[Request](ringchan.New(4096))
//
//	// Many producers, one reservation in flight at a time
//	tx, rx, err := ringchan.Build[Job](ringchan.New(256).Producers(ringchan.HeadTailSync))
type Builder struct {
	opts Options
}

// New creates a channel builder with the given capacity.
//
// Capacity is used as is and must be a power of 2 between 1 and 1<<31.
// The check is deferred to [Build], which returns [ErrCapacity].
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will send.
// Equivalent to Producers(Single).
func (b *Builder) SingleProducer() *Builder {
	b.opts.producers = Single
	return b
}

// SingleConsumer declares that only one goroutine will receive.
// Equivalent to Consumers(Single).
func (b *Builder) SingleConsumer() *Builder {
	b.opts.consumers = Single
	return b
}

// Producers sets the synchronization mode of the producer role.
func (b *Builder) Producers(m SyncMode) *Builder {
	b.opts.producers = m
	return b
}

// Consumers sets the synchronization mode of the consumer role.
func (b *Builder) Consumers(m SyncMode) *Builder {
	b.opts.consumers = m
	return b
}

// Build creates a channel and returns its first sender and receiver.
//
// Both handles are live from the start. The channel closes for receivers
// once every Sender is closed and for senders once every Receiver (and
// every open RecvValues) is closed.
func Build[T any](b *Builder) (*Sender[T], *Receiver[T], error) {
	if b.opts.producers > HeadTailSync || b.opts.consumers > HeadTailSync {
		return nil, nil, ErrMode
	}
	r, err := newRing[T](b.opts.capacity, b.opts.producers, b.opts.consumers, b.opts.start)
	if err != nil {
		return nil, nil, err
	}
	return &Sender[T]{r: r}, &Receiver[T]{r: r}, nil
}

// NewMPMC creates a multi-producer multi-consumer channel.
func NewMPMC[T any](capacity int) (*Sender[T], *Receiver[T], error) {
	return Build[T](New(capacity))
}

// NewMPSC creates a multi-producer single-consumer channel.
func NewMPSC[T any](capacity int) (*Sender[T], *Receiver[T], error) {
	return Build[T](New(capacity).SingleConsumer())
}

// NewSPMC creates a single-producer multi-consumer channel.
func NewSPMC[T any](capacity int) (*Sender[T], *Receiver[T], error) {
	return Build[T](New(capacity).SingleProducer())
}

// NewSPSC creates a single-producer single-consumer channel.
func NewSPSC[T any](capacity int) (*Sender[T], *Receiver[T], error) {
	return Build[T](New(capacity).SingleProducer().SingleConsumer())
}

// NewMPMCHTS creates a multi-producer multi-consumer channel where each
// role allows one reservation in flight at a time.
func NewMPMCHTS[T any](capacity int) (*Sender[T], *Receiver[T], error) {
	return Build[T](New(capacity).Producers(HeadTailSync).Consumers(HeadTailSync))
}
