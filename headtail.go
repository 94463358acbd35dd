// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// SyncMode selects how handles of one role (producers or consumers)
// coordinate their reservations.
type SyncMode uint8

const (
	// Multi allows any number of concurrent handles. Reservations race on
	// a CAS loop; publication waits until every earlier reservation of the
	// role has been published.
	Multi SyncMode = iota

	// Single declares that exactly one goroutine uses the role. The
	// reservation is a plain load followed by a store.
	//
	// Exclusivity is attested by the caller and enforced only at handle
	// issue: Clone on a Single handle returns ErrExclusive. Sharing a
	// Single handle between goroutines is undefined behavior (lost
	// updates, overlapping reservations).
	Single

	// HeadTailSync allows any number of handles but only one reservation
	// of the role in flight at a time. Head and tail live in one word, so a
	// new reservation waits for the previous one to be published instead
	// of publication waiting on earlier reservations.
	HeadTailSync
)

// String returns the mode name.
func (m SyncMode) String() string {
	switch m {
	case Multi:
		return "Multi"
	case Single:
		return "Single"
	case HeadTailSync:
		return "HeadTailSync"
	default:
		return "SyncMode(?)"
	}
}

// headTail is the counter block of one role.
//
// Head counts slots reserved by the role, tail counts slots published to
// the other role. Both are free-running uint32 positions held in 64-bit
// atomics; positions wrap and are only ever compared by subtraction.
// In HeadTailSync mode only ht is used: head in the high half, tail in the
// low half.
//
// Each counter sits on its own cache line. Head is touched only by
// same-role handles; tail is read by the other role on every reservation.
type headTail struct {
	_    cpu.CacheLinePad
	head atomix.Uint64
	_    cpu.CacheLinePad
	tail atomix.Uint64
	_    cpu.CacheLinePad
	ht   atomix.Uint64
	_    cpu.CacheLinePad
	done atomix.Bool // Last handle of the role has closed
	mode SyncMode
}

// claim is a granted reservation of n slots starting at position start.
// A claim must always be published; abandoning it stalls the role.
type claim struct {
	start uint32
	n     uint32
}

// end returns the position one past the claim.
func (c claim) end() uint32 {
	return c.start + c.n
}

func packHT(head, tail uint32) uint64 {
	return uint64(head)<<32 | uint64(tail)
}

func unpackHT(v uint64) (head, tail uint32) {
	return uint32(v >> 32), uint32(v)
}

// loadTail returns the published position of the role with acquire
// ordering. Every slot write (or read) the role did before publishing is
// visible to the caller afterwards.
func (h *headTail) loadTail() uint32 {
	if h.mode == HeadTailSync {
		_, tail := unpackHT(h.ht.LoadAcquire())
		return tail
	}
	return uint32(h.tail.LoadAcquire())
}

// loadHead returns the reserved position of the role.
func (h *headTail) loadHead() uint32 {
	if h.mode == HeadTailSync {
		head, _ := unpackHT(h.ht.LoadAcquire())
		return head
	}
	return uint32(h.head.LoadAcquire())
}

// reset installs pos as both head and tail. Only valid before the ring is
// shared.
func (h *headTail) reset(pos uint32) {
	h.head.StoreRelaxed(uint64(pos))
	h.tail.StoreRelaxed(uint64(pos))
	h.ht.StoreRelaxed(packHT(pos, pos))
}

// available returns how many slots the role may reserve at head given the
// other role's tail.
//
// Producers: capacity - (head - consumer tail) free slots.
// Consumers: producer tail - head published elements.
func available(prod bool, capacity, head, otherTail uint32) uint32 {
	if prod {
		return capacity - (head - otherTail)
	}
	return otherTail - head
}

// grant applies the bulk or burst policy to a request of n slots.
func grant(prod, exact bool, avail, n uint32) (uint32, error) {
	if avail == 0 {
		return 0, errUnavailable(prod)
	}
	if n > avail {
		if exact {
			return 0, errShort(prod)
		}
		return avail, nil
	}
	return n, nil
}

// moveHead reserves up to n slots for the role h against other.
//
// The reservation never blocks: it returns a claim, or ErrFull/ErrEmpty
// (or their bulk variants) when nothing suitable is available. HeadTailSync
// is the exception that waits for the single in-flight same-role
// reservation to be published, which is bounded by one copy loop.
func (h *headTail) moveHead(other *headTail, prod, exact bool, capacity, n uint32) (claim, error) {
	switch h.mode {
	case Single:
		// Sole owner of head: no competitor can move it.
		head := uint32(h.head.LoadRelaxed())
		// Sync with the other role's StoreRelease in publish.
		k, err := grant(prod, exact, available(prod, capacity, head, other.loadTail()), n)
		if err != nil {
			return claim{}, err
		}
		h.head.StoreRelaxed(uint64(head + k))
		return claim{start: head, n: k}, nil

	case HeadTailSync:
		sw := spin.Wait{}
		old := h.ht.LoadAcquire()
		for {
			head, tail := unpackHT(old)
			if head != tail {
				// Another same-role reservation is in flight.
				sw.Once()
				old = h.ht.LoadAcquire()
				continue
			}
			k, err := grant(prod, exact, available(prod, capacity, head, other.loadTail()), n)
			if err != nil {
				return claim{}, err
			}
			yieldPoint()
			if h.ht.CompareAndSwapAcqRel(old, packHT(head+k, tail)) {
				return claim{start: head, n: k}, nil
			}
			sw.Once()
			old = h.ht.LoadAcquire()
		}

	default:
		sw := spin.Wait{}
		for {
			// Acquire orders the head load before the other tail load.
			head := uint32(h.head.LoadAcquire())
			k, err := grant(prod, exact, available(prod, capacity, head, other.loadTail()), n)
			if err != nil {
				return claim{}, err
			}
			yieldPoint()
			if h.head.CompareAndSwapAcqRel(uint64(head), uint64(head+k)) {
				return claim{start: head, n: k}, nil
			}
			// Lost to a same-role competitor: recompute from scratch.
			sw.Once()
		}
	}
}

// publish makes the slots of c visible to the other role.
//
// In Multi mode publication preserves reservation order: the caller spins
// until every earlier claim of the role is published, then advances tail
// with a release store. The spin is bounded by the number of same-role
// claims still in flight ahead of c, not by the ring size.
func (h *headTail) publish(c claim) {
	switch h.mode {
	case Single:
		assertPublishOrder(uint32(h.tail.LoadRelaxed()), c.start)
		h.tail.StoreRelease(uint64(c.end()))

	case HeadTailSync:
		end := c.end()
		h.ht.StoreRelease(packHT(end, end))

	default:
		sw := spin.Wait{}
		for uint32(h.tail.LoadAcquire()) != c.start {
			sw.Once()
		}
		yieldPoint()
		h.tail.StoreRelease(uint64(c.end()))
	}
}

// finish marks the role as having no live handles.
func (h *headTail) finish() {
	h.done.StoreRelease(true)
}

// finished reports whether the role has no live handles.
func (h *headTail) finished() bool {
	return h.done.LoadAcquire()
}
