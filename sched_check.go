// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build ringcheck

package ringchan

import (
	"fmt"
	"math/rand/v2"
	"runtime"

	"code.hybscloud.com/atomix"
)

// yieldOneIn controls how often yieldPoint reschedules: once in every
// yieldOneIn calls on average. Zero disables rescheduling.
var yieldOneIn atomix.Uint64

func init() {
	yieldOneIn.StoreRelaxed(4)
}

// yieldPoint randomly hands the processor to another goroutine. Placed
// between the load and the CAS of a reservation, inside copy loops and
// before publication, it widens the windows in which competing handles
// interleave.
func yieldPoint() {
	n := yieldOneIn.LoadRelaxed()
	if n != 0 && rand.Uint64N(n) == 0 {
		runtime.Gosched()
	}
}

func assertPublishOrder(tail, start uint32) {
	if tail != start {
		panic(fmt.Sprintf("ringchan: out-of-order publication on Single role: tail %d, claim start %d", tail, start))
	}
}

// assertCounters checks consTail <= consHead <= prodTail <= prodHead <=
// consTail+capacity while other handles keep moving the counters.
//
// Counters only move forward, so a pair a <= b still holds when a is
// loaded before b: the later load can only have grown. The chain is loaded
// from the smallest counter up, and the capacity bound loads prodHead
// before the consumer tail it is compared to. Distances are modular; one
// above maxCapacity means the later counter is behind the earlier one.
func (r *ring[T]) assertCounters() {
	consTail := r.cons.loadTail()
	consHead := r.cons.loadHead()
	prodTail := r.prod.loadTail()
	prodHead := r.prod.loadHead()
	bound := r.cons.loadTail()

	switch {
	case consHead-consTail > maxCapacity:
		panic(fmt.Sprintf("ringchan: consumer head %d behind consumer tail %d", consHead, consTail))
	case prodTail-consHead > maxCapacity:
		panic(fmt.Sprintf("ringchan: producer tail %d behind consumer head %d", prodTail, consHead))
	case prodHead-prodTail > maxCapacity:
		panic(fmt.Sprintf("ringchan: producer head %d behind producer tail %d", prodHead, prodTail))
	}
	if d := prodHead - bound; d <= maxCapacity && d > r.capacity {
		panic(fmt.Sprintf("ringchan: producer head %d more than %d ahead of consumer tail %d", prodHead, r.capacity, bound))
	}
}
