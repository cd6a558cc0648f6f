package radio

import (
	"fmt"
	"testing"
)

func TestRecent_AddHas(t *testing.T) {
	r := NewRecent(3)

	if r.Has("a") {
		t.Error("Has(a) = true on empty set")
	}
	r.Add("a")
	if !r.Has("a") {
		t.Error("Has(a) = false after Add")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRecent_EvictsOldest(t *testing.T) {
	r := NewRecent(3)

	for _, k := range []string{"a", "b", "c", "d"} {
		r.Add(k)
	}

	if r.Has("a") {
		t.Error("Has(a) = true, want evicted")
	}
	for _, k := range []string{"b", "c", "d"} {
		if !r.Has(k) {
			t.Errorf("Has(%s) = false, want true", k)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRecent_StaysCorrectAcrossRebuilds(t *testing.T) {
	r := NewRecent(5)

	for i := range 50 {
		r.Add(fmt.Sprintf("k%d", i))
	}

	for i := range 45 {
		if r.Has(fmt.Sprintf("k%d", i)) {
			t.Errorf("Has(k%d) = true, want evicted", i)
		}
	}
	for i := 45; i < 50; i++ {
		if !r.Has(fmt.Sprintf("k%d", i)) {
			t.Errorf("Has(k%d) = false, want true", i)
		}
	}
}

func TestRecent_Clear(t *testing.T) {
	r := NewRecent(2)
	r.Add("a")

	r.Clear()

	if r.Has("a") || r.Len() != 0 {
		t.Error("Clear() should forget everything")
	}
}
