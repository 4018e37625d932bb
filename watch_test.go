package main

import (
	"testing"
	"time"
)

// TestDebouncerBatches checks events inside one quiet window arrive as one
// batch with duplicates collapsed
func TestDebouncerBatches(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	d.add("a.css")
	d.add("b.html")
	d.add("a.css")

	select {
	case batch := <-d.out():
		if len(batch) != 2 {
			t.Errorf("batch size = %d, want 2 (duplicates collapsed)", len(batch))
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never flushed")
	}
}

// TestDebouncerResetsOnNewEvent checks the quiet period restarts per event
func TestDebouncerResetsOnNewEvent(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)

	d.add("a.css")
	time.Sleep(50 * time.Millisecond)
	d.add("b.css") // Arrives inside the window, restarts the timer

	select {
	case <-d.out():
		t.Fatal("flushed before the restarted window elapsed")
	case <-time.After(70 * time.Millisecond):
	}

	select {
	case batch := <-d.out():
		if len(batch) != 2 {
			t.Errorf("batch size = %d, want 2", len(batch))
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never flushed after restart")
	}
}

// TestDebouncerEmptyFlush checks a flush with nothing pending emits nothing
func TestDebouncerEmptyFlush(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	d.flush()
	select {
	case batch := <-d.out():
		t.Errorf("unexpected batch %v from empty flush", batch)
	case <-time.After(30 * time.Millisecond):
	}
}
