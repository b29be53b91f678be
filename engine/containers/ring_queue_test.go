package containers

import "testing"

func TestRingQueueFIFO(t *testing.T) {
	q := NewRingQueue[int](3)
	for i := 1; i <= 3; i++ {
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := q.Enqueue(4); err != ErrQueueFull {
		t.Errorf("Enqueue on full queue = %v, want ErrQueueFull", err)
	}
	for i := 1; i <= 3; i++ {
		v, err := q.Dequeue()
		if err != nil || v != i {
			t.Errorf("Dequeue = %d, %v, want %d", v, err, i)
		}
	}
	if _, err := q.Dequeue(); err != ErrQueueEmpty {
		t.Errorf("Dequeue on empty queue = %v, want ErrQueueEmpty", err)
	}
}

func TestRingQueueWraparound(t *testing.T) {
	q := NewRingQueue[string](2)
	q.Enqueue("a")
	q.Enqueue("b")
	q.Dequeue()
	if err := q.Enqueue("c"); err != nil {
		t.Fatalf("Enqueue after wrap: %v", err)
	}
	if v, _ := q.Peek(); v != "b" {
		t.Errorf("Peek = %q, want b", v)
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
}
