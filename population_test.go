// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

import "testing"

// TestRegisterLimits verifies each role stops accepting handles at its
// limit without touching the other role.
func TestRegisterLimits(t *testing.T) {
	r, err := newRing[int](4, Multi, Multi, 0)
	if err != nil {
		t.Fatal(err)
	}

	r.active.StoreRelaxed(uint64(roleLimit)<<32 | 1)
	if err := r.register(true); err != ErrTooManyProducers {
		t.Fatalf("register producer at limit: got %v, want ErrTooManyProducers", err)
	}
	if err := r.register(false); err != nil {
		t.Fatalf("register consumer: %v", err)
	}
	if got := r.active.LoadRelaxed(); got != uint64(roleLimit)<<32|2 {
		t.Fatalf("active: got %#x", got)
	}

	r.active.StoreRelaxed(1<<32 | uint64(roleLimit))
	if err := r.register(false); err != ErrTooManyConsumers {
		t.Fatalf("register consumer at limit: got %v, want ErrTooManyConsumers", err)
	}
	if err := r.register(true); err != nil {
		t.Fatalf("register producer: %v", err)
	}
	if s := r.state(); s.Producers != 2 || s.Consumers != roleLimit {
		t.Fatalf("population: got %d/%d", s.Producers, s.Consumers)
	}
}

// TestRegisterAfterFinish verifies a role that reached zero handles stays
// closed.
func TestRegisterAfterFinish(t *testing.T) {
	r, err := newRing[int](4, Multi, Multi, 0)
	if err != nil {
		t.Fatal(err)
	}
	r.unregister(true)
	if !r.prod.finished() {
		t.Fatal("producer role not finished after last handle")
	}
	if err := r.register(true); err != ErrClosed {
		t.Fatalf("register producer after finish: got %v, want ErrClosed", err)
	}
	if err := r.register(false); err != nil {
		t.Fatalf("register consumer: %v", err)
	}
}

// TestValidCapacity covers the bounds of the capacity check.
func TestValidCapacity(t *testing.T) {
	for _, c := range []int{1, 2, 1 << 10, 1 << 30} {
		if !validCapacity(c) {
			t.Errorf("validCapacity(%d) = false", c)
		}
	}
	for _, c := range []int{-4, 0, 3, 1<<30 + 1} {
		if validCapacity(c) {
			t.Errorf("validCapacity(%d) = true", c)
		}
	}
}
