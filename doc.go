// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringchan provides a bounded lock-free channel built on a ring of
// cells and two pairs of head/tail counters.
//
// Each role (producers and consumers) owns a head, counting slots it has
// reserved, and a tail, counting slots it has published to the other role.
// A transfer reserves a contiguous run of slots by advancing head, copies
// elements in or out, then publishes by advancing tail. Reservations and
// publications of one role happen in the same order, so elements are
// received in the order their reservations were granted.
//
// # Quick Start
//
// Direct constructors:
//
//	tx, rx, err := ringchan.NewSPSC[Event](1024)
//	tx, rx, err := ringchan.NewMPMC[*Request](4096)
//
// Builder API with per-role modes:
//
//	tx, rx, err := ringchan.Build[Event](ringchan.New(1024).SingleProducer().SingleConsumer())
//	tx, rx, err := ringchan.Build[Event](ringchan.New(1024).SingleConsumer())
//	tx, rx, err := ringchan.Build[Event](ringchan.New(1024).Producers(ringchan.HeadTailSync))
//
// Capacity is exact and must be a power of 2 between 1 and 1<<31.
// Other values fail with [ErrCapacity].
//
// # Basic Usage
//
//	tx, rx, _ := ringchan.NewMPMC[int](1024)
//
//	// Non-blocking
//	err := tx.TrySend(42)
//	if ringchan.IsWouldBlock(err) {
//	    // Full - handle backpressure
//	}
//	v, err := rx.TryRecv()
//	if ringchan.IsWouldBlock(err) {
//	    // Empty - try again later
//	}
//
//	// Blocking, with cancellation
//	err = tx.Send(ctx, 42)
//	v, err = rx.Recv(ctx)
//
// # Bulk and Burst
//
// Bulk transfers move every requested element or none:
//
//	n, err := tx.TrySendBulk(batch)   // n == len(batch) or n == 0
//	n, err := rx.TryRecvBulk(buf)     // n == len(buf) or n == 0
//
// Burst transfers move as many as possible and report the count:
//
//	n, err := tx.TrySendBurst(batch)  // 0 < n <= len(batch) unless err != nil
//	n, err := rx.TryRecvBurst(buf)
//
// A bulk request that is partially satisfiable fails with
// [ErrNotEnoughSpace] or [ErrNotEnoughItems]; both wrap [ErrFull] or
// [ErrEmpty], so [IsWouldBlock] holds for them too.
//
// Receives can also reserve elements and move them out lazily:
//
//	vals, err := rx.TryRecvBurstValues(64)
//	if err == nil {
//	    for v := range vals.All() {
//	        process(v)
//	    }
//	}
//
// # Sync Modes
//
// Each role selects one [SyncMode]:
//
//	Multi        - Any number of handles; CAS reservation, ordered publication
//	Single       - One goroutine; plain load/store reservation
//	HeadTailSync - Any number of handles; one reservation in flight at a time
//
// Single handles cannot be cloned: [Sender.Clone] and [Receiver.Clone]
// return [ErrExclusive]. Using one Single handle from several goroutines
// causes undefined behavior including lost elements.
//
// # Error Handling
//
// Backpressure is reported with [ErrFull] and [ErrEmpty], both wrapping
// [ErrWouldBlock], which is sourced from [code.hybscloud.com/iox]:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := tx.TrySend(item)
//	    if err == nil {
//	        break
//	    }
//	    if !ringchan.IsWouldBlock(err) {
//	        return err // ErrClosed
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	ringchan.IsWouldBlock(err)  // true if full/empty
//	ringchan.IsSemantic(err)    // true if control flow signal
//	ringchan.IsNonFailure(err)  // true if nil or would block
//	ringchan.IsClosed(err)      // true if the peer role is gone
//
// # Closing
//
// Channels close by handle population. Build returns one live handle per
// role; [Sender.Clone] and [Receiver.Clone] add more and Close releases
// them. When the last Sender is closed, receivers drain what was published
// and then get [ErrClosed]. A bulk receive asking for more than is left
// gets [ErrNotEnoughItemsClosed], which wraps ErrClosed rather than
// ErrWouldBlock; a burst receive takes the remainder. When the last
// Receiver is closed, senders get [ErrClosed] immediately. When every
// handle is closed, undelivered elements are cleared from the ring.
//
//	tx, rx, _ := ringchan.NewSPSC[int](8)
//	tx.TrySend(1)
//	tx.Close()
//	v, _ := rx.TryRecv()    // 1
//	_, err := rx.TryRecv()  // ErrClosed
//
// # Verification Build
//
// Building with -tags ringcheck replaces the cell storage with a checked
// variant that tracks each cell's state and panics on a double write,
// a read of an empty cell, or an out-of-order publication on a Single
// role. It also inserts random scheduling points into every reservation,
// copy loop and publication, so stress tests explore more interleavings:
//
//	go test -tags ringcheck -count=20 ./...
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through acquire-release orderings on separate variables.
// Element cells are plain memory guarded by the head/tail counters, so
// concurrent tests may report false positives and are skipped when
// [RaceEnabled] is true. Use the ringcheck build for verification.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and [golang.org/x/sys/cpu] for cache line padding.
package ringchan
