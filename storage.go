// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !ringcheck

package ringchan

// storage holds the element cells of a ring.
//
// A cell is written once per cycle by the producer holding its claim and
// taken once per cycle by the consumer holding its claim. Taking a cell
// clears it so the garbage collector can reclaim what the element referenced.
//
// Building with -tags ringcheck swaps in a checked implementation with the
// same method set that fails fast on lifecycle violations.
type storage[T any] struct {
	cells []T
}

func newStorage[T any](n int) storage[T] {
	return storage[T]{cells: make([]T, n)}
}

// write stores v into cell i.
func (s *storage[T]) write(i uint32, v T) {
	s.cells[i] = v
}

// take moves the element out of cell i.
func (s *storage[T]) take(i uint32) T {
	v := s.cells[i]
	var zero T
	s.cells[i] = zero
	return v
}

// drop discards the element in cell i.
func (s *storage[T]) drop(i uint32) {
	var zero T
	s.cells[i] = zero
}
