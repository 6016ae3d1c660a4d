package arena

import "testing"

type node struct {
	value int
}

func TestPoolNewAndAt(t *testing.T) {
	p := NewPool[node]()
	n1, h1 := p.New()
	n1.value = 1
	n2, h2 := p.New()
	n2.value = 2

	if p.At(h1).value != 1 || p.At(h2).value != 2 {
		t.Fatalf("expected handles to resolve back to the nodes that created them")
	}
	if p.Len() != 2 {
		t.Fatalf("expected Len() == 2, got %d", p.Len())
	}
}

func TestPoolGrowsAcrossBlocks(t *testing.T) {
	p := NewPool[node]()
	var handles []Handle
	for i := 0; i < initialBlockCapacity*3; i++ {
		n, h := p.New()
		n.value = i
		handles = append(handles, h)
	}
	for i, h := range handles {
		if p.At(h).value != i {
			t.Fatalf("node %d: expected value %d, got %d", i, i, p.At(h).value)
		}
	}
}

func TestHandleZeroValueIsInvalid(t *testing.T) {
	var h Handle
	if h.IsValid() {
		t.Fatalf("zero-value Handle must be invalid")
	}
}

func TestArenaCheckAliveAfterRelease(t *testing.T) {
	a := New()
	a.CheckAlive()
	a.Release()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected CheckAlive to panic after Release")
		}
	}()
	a.CheckAlive()
}
