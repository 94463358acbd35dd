// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build ringcheck

package ringchan

// LiveCells returns the number of cells holding an element.
func LiveCells[T any](tx *Sender[T]) int {
	return tx.r.data.live()
}

// SetYieldOneIn sets the rescheduling rate of yield points and returns the
// previous rate.
func SetYieldOneIn(n uint64) uint64 {
	old := yieldOneIn.LoadRelaxed()
	yieldOneIn.StoreRelaxed(n)
	return old
}
