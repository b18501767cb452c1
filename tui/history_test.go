// ABOUTME: Tests for command-line history recall
// ABOUTME: Verifies browsing order, draft restore and size limits

package tui

import "testing"

func TestHistory_PrevAndNext(t *testing.T) {
	h := NewHistory(50)
	h.Push("PLAY a")
	h.Push("STOP")

	line, ok := h.Prev("half typed")
	if !ok || line != "STOP" {
		t.Fatalf("Prev = %q, %v; want STOP", line, ok)
	}

	line, ok = h.Prev("STOP")
	if !ok || line != "PLAY a" {
		t.Fatalf("Prev = %q, %v; want PLAY a", line, ok)
	}

	if _, ok := h.Prev("PLAY a"); ok {
		t.Error("Prev should fail past the oldest entry")
	}

	line, ok = h.Next()
	if !ok || line != "STOP" {
		t.Fatalf("Next = %q, %v; want STOP", line, ok)
	}

	line, ok = h.Next()
	if !ok || line != "half typed" {
		t.Fatalf("Next = %q, %v; want draft restored", line, ok)
	}

	if _, ok := h.Next(); ok {
		t.Error("Next should fail when not browsing")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(10)

	if _, ok := h.Prev(""); ok {
		t.Error("Prev should fail on empty history")
	}

	if _, ok := h.Next(); ok {
		t.Error("Next should fail on empty history")
	}
}

func TestHistory_SkipsBlankAndRepeats(t *testing.T) {
	h := NewHistory(10)
	h.Push("HELP")
	h.Push("HELP")
	h.Push("")
	h.Push("STOP")

	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(3)

	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Push(line)
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	var got []string

	for {
		line, ok := h.Prev("")
		if !ok {
			break
		}

		got = append(got, line)
	}

	want := []string{"e", "d", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_PushStopsBrowsing(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")

	_, _ = h.Prev("")
	h.Push("c")

	line, ok := h.Prev("")
	if !ok || line != "c" {
		t.Errorf("Prev after push = %q, want c", line)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", h.Len())
	}

	if _, ok := h.Prev(""); ok {
		t.Error("Prev should fail after Clear")
	}
}

func TestNewHistoryClampsSize(t *testing.T) {
	h := NewHistory(0)
	h.Push("a")
	h.Push("b")

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}
