// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// TestCounterLayout verifies each hot counter sits on its own cache line.
func TestCounterLayout(t *testing.T) {
	line := unsafe.Sizeof(cpu.CacheLinePad{})

	var h headTail
	offsets := []struct {
		name string
		off  uintptr
	}{
		{"head", unsafe.Offsetof(h.head)},
		{"tail", unsafe.Offsetof(h.tail)},
		{"ht", unsafe.Offsetof(h.ht)},
		{"done", unsafe.Offsetof(h.done)},
	}
	for i := 1; i < len(offsets); i++ {
		prev, cur := offsets[i-1], offsets[i]
		if cur.off-prev.off < line {
			t.Errorf("%s and %s share a cache line: offsets %d and %d", prev.name, cur.name, prev.off, cur.off)
		}
	}

	var r ring[int]
	prodDone := unsafe.Offsetof(r.prod) + unsafe.Offsetof(r.prod.done)
	consHead := unsafe.Offsetof(r.cons) + unsafe.Offsetof(r.cons.head)
	if consHead-prodDone < line {
		t.Errorf("producer done flag and consumer head share a cache line")
	}
	if unsafe.Offsetof(r.prod)+unsafe.Offsetof(r.prod.head)-unsafe.Offsetof(r.active) < line {
		t.Errorf("population word and producer head share a cache line")
	}
}

// TestClaimEnd verifies claim arithmetic wraps with the positions.
func TestClaimEnd(t *testing.T) {
	c := claim{start: ^uint32(0) - 1, n: 4}
	if got := c.end(); got != 2 {
		t.Fatalf("end: got %d, want 2", got)
	}
}

// TestPackHT verifies the head/tail packing round-trips.
func TestPackHT(t *testing.T) {
	head, tail := unpackHT(packHT(0xdeadbeef, 7))
	if head != 0xdeadbeef || tail != 7 {
		t.Fatalf("unpackHT: got (%#x, %d)", head, tail)
	}
}

// TestAvailable covers free space and published counts across the wrap.
func TestAvailable(t *testing.T) {
	tests := []struct {
		name     string
		prod     bool
		capacity uint32
		head     uint32
		tail     uint32
		want     uint32
	}{
		{"producer empty", true, 8, 100, 100, 8},
		{"producer full", true, 8, 108, 100, 0},
		{"producer wrapped", true, 8, 2, ^uint32(0) - 1, 4},
		{"consumer empty", false, 8, 100, 100, 0},
		{"consumer wrapped", false, 8, ^uint32(0), 3, 4},
	}
	for _, tt := range tests {
		if got := available(tt.prod, tt.capacity, tt.head, tt.tail); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestGrant covers the bulk and burst policies.
func TestGrant(t *testing.T) {
	if _, err := grant(true, true, 0, 1); err != ErrFull {
		t.Errorf("nothing free: got %v, want ErrFull", err)
	}
	if _, err := grant(false, false, 0, 1); err != ErrEmpty {
		t.Errorf("nothing published: got %v, want ErrEmpty", err)
	}
	if _, err := grant(true, true, 3, 4); err != ErrNotEnoughSpace {
		t.Errorf("bulk short: got %v, want ErrNotEnoughSpace", err)
	}
	if n, err := grant(false, false, 3, 4); n != 3 || err != nil {
		t.Errorf("burst short: got (%d, %v), want (3, nil)", n, err)
	}
	if n, err := grant(false, true, 5, 4); n != 4 || err != nil {
		t.Errorf("bulk fits: got (%d, %v), want (4, nil)", n, err)
	}
}
