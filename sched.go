// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !ringcheck

package ringchan

// yieldPoint marks a place where the verification build may reschedule
// the calling goroutine. It compiles to nothing here.
func yieldPoint() {}

// assertPublishOrder checks that a Single role publishes its claims in
// reservation order. Only the verification build checks.
func assertPublishOrder(tail, start uint32) {}

// assertCounters checks the ordering of the four counters. Only the
// verification build checks.
func (r *ring[T]) assertCounters() {}
