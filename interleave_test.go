// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build ringcheck

package ringchan_test

import (
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/ringchan"
)

// =============================================================================
// Forced Interleavings
// =============================================================================

// TestInterleavedConservation reruns the conservation scenario with
// frequent rescheduling inside reservations, copies and publications. The
// checked storage panics on any cell accessed out of turn, and the counter
// order is asserted after every reservation and publication.
func TestInterleavedConservation(t *testing.T) {
	old := ringchan.SetYieldOneIn(2)
	defer ringchan.SetYieldOneIn(old)

	for mc := range slices.Values(allModes) {
		t.Run(mc.name, func(t *testing.T) {
			numP, numC := 1, 1
			if mc.multi {
				numP, numC = 3, 3
			}
			tx, rx := mustBuild(t, mc.build, 4)
			ct := &conservationTest{
				t:            t,
				numP:         numP,
				numC:         numC,
				itemsPerProd: 300,
				batch:        3,
				timeout:      20 * time.Second,
			}
			ct.run(tx, rx)
			if n := ringchan.LiveCells(tx); n != 0 {
				t.Fatalf("live cells after drain: got %d, want 0", n)
			}
		})
	}
}

// TestTeardownReleasesCells verifies closing the last handle empties every
// cell that still held an element.
func TestTeardownReleasesCells(t *testing.T) {
	tx, rx, err := ringchan.NewMPMC[int](8)
	if err != nil {
		t.Fatal(err)
	}
	tx.TrySendBulk([]int{1, 2, 3, 4, 5})
	rx.TryRecv()
	if n := ringchan.LiveCells(tx); n != 4 {
		t.Fatalf("live cells: got %d, want 4", n)
	}
	rx.Close()
	tx.Close()
	if n := ringchan.LiveCells(tx); n != 0 {
		t.Fatalf("live cells after teardown: got %d, want 0", n)
	}
}
