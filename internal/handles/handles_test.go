package handles

import (
	"sync"
	"testing"
)

func TestAllocAndValue(t *testing.T) {
	type person struct {
		Name string
		Age  int
	}

	p := &person{Name: "Ada", Age: 36}
	h := Alloc(p)
	defer Release(h)

	if h == 0 {
		t.Fatal("Alloc should return non-zero handle")
	}

	got, ok := Value(h)
	if !ok {
		t.Fatal("Value should find a live handle")
	}
	if got.(*person) != p {
		t.Errorf("Value returned %v, want the retained pointer", got)
	}
}

func TestRelease(t *testing.T) {
	h := Alloc("retained")

	if !Release(h) {
		t.Error("Release of a live handle should report true")
	}
	if _, ok := Value(h); ok {
		t.Error("Value should miss after Release")
	}
	if Release(h) {
		t.Error("second Release should report false")
	}
}

func TestValueUnknownHandle(t *testing.T) {
	if _, ok := Value(1 << 40); ok {
		t.Error("Value of a never-issued handle should miss")
	}
	if _, ok := Value(0); ok {
		t.Error("Value of the zero handle should miss")
	}
}

func TestHandlesAreNotReused(t *testing.T) {
	first := Alloc(1)
	Release(first)
	second := Alloc(2)
	defer Release(second)

	if first == second {
		t.Errorf("handle %d was reissued after release", first)
	}
}

func TestCount(t *testing.T) {
	before := Count()
	a := Alloc("a")
	b := Alloc("b")
	if got := Count(); got != before+2 {
		t.Errorf("Count = %d, want %d", got, before+2)
	}
	Release(a)
	Release(b)
	if got := Count(); got != before {
		t.Errorf("Count = %d after release, want %d", got, before)
	}
}

func TestConcurrentAccess(t *testing.T) {
	const goroutines = 50
	const ops = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				h := Alloc([2]int{id, j})
				if _, ok := Value(h); !ok {
					t.Errorf("Value missed live handle %d", h)
				}
				Release(h)
			}
		}(i)
	}
	wg.Wait()
}
