// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build ringcheck

package ringchan

import (
	"fmt"

	"code.hybscloud.com/atomix"
)

// Cell states of the checked storage.
const (
	cellEmpty uint64 = iota
	cellWriting
	cellFull
	cellReading
)

// storage is the verification build of the element cells.
//
// Every cell carries a state word driven by CAS. A write into a full cell,
// a take from an empty cell, or two goroutines touching one cell at the
// same time panics at the faulting access.
type storage[T any] struct {
	cells []checkedCell[T]
}

type checkedCell[T any] struct {
	state atomix.Uint64
	v     T
}

func newStorage[T any](n int) storage[T] {
	return storage[T]{cells: make([]checkedCell[T], n)}
}

func (s *storage[T]) enter(i uint32, from, to uint64, op string) *checkedCell[T] {
	c := &s.cells[i]
	if !c.state.CompareAndSwapAcqRel(from, to) {
		panic(fmt.Sprintf("ringchan: %s on cell %d in state %s", op, i, cellState(c.state.LoadAcquire())))
	}
	return c
}

func (s *storage[T]) write(i uint32, v T) {
	c := s.enter(i, cellEmpty, cellWriting, "write")
	c.v = v
	c.state.StoreRelease(cellFull)
}

func (s *storage[T]) take(i uint32) T {
	c := s.enter(i, cellFull, cellReading, "take")
	v := c.v
	var zero T
	c.v = zero
	c.state.StoreRelease(cellEmpty)
	return v
}

func (s *storage[T]) drop(i uint32) {
	c := s.enter(i, cellFull, cellReading, "drop")
	var zero T
	c.v = zero
	c.state.StoreRelease(cellEmpty)
}

// live returns the number of cells holding an element.
func (s *storage[T]) live() int {
	n := 0
	for i := range s.cells {
		if s.cells[i].state.LoadAcquire() == cellFull {
			n++
		}
	}
	return n
}

func cellState(s uint64) string {
	switch s {
	case cellEmpty:
		return "empty"
	case cellWriting:
		return "writing"
	case cellFull:
		return "full"
	case cellReading:
		return "reading"
	default:
		return "invalid"
	}
}
