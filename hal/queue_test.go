package hal

import "testing"

func TestEventQueueTryNextEmpty(t *testing.T) {
	var q EventQueue

	_, ok := q.TryNext()
	if ok {
		t.Fatalf("TryNext() ok = true, want false")
	}
}

func TestEventQueueTryPostFull(t *testing.T) {
	var q EventQueue

	for i := 0; i < queueSlots; i++ {
		if ok := q.TryPost(ResizeEvent{Width: i}); !ok {
			t.Fatalf("TryPost() ok = false at slot %d, want true", i)
		}
	}
	if ok := q.TryPost(CloseEvent{}); ok {
		t.Fatalf("TryPost() ok = true when full, want false")
	}
	if got := q.Len(); got != queueSlots {
		t.Fatalf("Len() = %d, want %d", got, queueSlots)
	}

	for i := 0; i < queueSlots; i++ {
		ev, ok := q.TryNext()
		if !ok {
			t.Fatalf("TryNext() ok = false at slot %d, want true", i)
		}
		if got := ev.(ResizeEvent).Width; got != i {
			t.Fatalf("TryNext() width = %d, want %d", got, i)
		}
	}
}

func TestEventQueueWrapsAround(t *testing.T) {
	var q EventQueue

	for round := 0; round < 3; round++ {
		for i := 0; i < queueSlots-1; i++ {
			q.TryPost(PaintEvent{})
		}
		for i := 0; i < queueSlots-1; i++ {
			if _, ok := q.TryNext(); !ok {
				t.Fatalf("round %d: TryNext() ok = false at %d", round, i)
			}
		}
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}
