package scroll

import "testing"

func TestStateClampsOffset(t *testing.T) {
	s := NewState(10, 4).ScrollBy(20)
	if s.Offset != 6 || s.CanScrollDown() || !s.CanScrollUp() {
		t.Fatalf("state = %+v", s)
	}
	s = s.ScrollTo(1)
	if s.Offset != 1 {
		t.Fatalf("ScrollTo(1) offset = %d", s.Offset)
	}
	if lo, hi := s.VisibleRange(); lo != 1 || hi != 5 {
		t.Fatalf("range = %d..%d", lo, hi)
	}
	if NewState(3, 4).CanScroll() {
		t.Fatalf("short content should not scroll")
	}
}

func TestScrollBarThumbAndValue(t *testing.T) {
	var changes []int
	b := NewScrollBar(ScrollBarConfig{Max: 10, Page: 10, OnChange: func(v int) { changes = append(changes, v) }})
	b.Resize(1, 10)

	if pos, size := b.Thumb(); pos != 0 || size != 5 {
		t.Fatalf("thumb = %d,%d", pos, size)
	}
	b.SetValue(10)
	if pos, _ := b.Thumb(); pos != 5 {
		t.Fatalf("thumb at end = %d", pos)
	}
	b.SetValue(99)
	b.SetValue(-3)
	if len(changes) != 2 || changes[0] != 10 || changes[1] != 0 {
		t.Fatalf("changes = %v", changes)
	}
}
