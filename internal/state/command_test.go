package state

import "testing"

func TestCommandBufferFlushReturnsEachCommandOnce(t *testing.T) {
	b := NewCommandBuffer()
	b.ZoomIn()
	b.ZoomOut()
	b.ResetZoom()

	got := b.Flush()
	if len(got) != 3 {
		t.Fatalf("flush returned %d commands, want 3", len(got))
	}
	if _, ok := got[0].(ZoomIn); !ok {
		t.Fatalf("first command = %T, want ZoomIn", got[0])
	}
	if _, ok := got[2].(ResetZoom); !ok {
		t.Fatalf("last command = %T, want ResetZoom", got[2])
	}
	if again := b.Flush(); len(again) != 0 {
		t.Fatalf("second flush returned %d commands, want 0", len(again))
	}
}

func TestCommandBufferAppendPreservesOrderAndDrainsOther(t *testing.T) {
	a := NewCommandBuffer()
	a.SelectFrame("one.png")
	a.SelectFrame("two.png")

	other := NewCommandBuffer()
	other.ZoomIn()
	other.Pan(1, 2)

	a.Append(other)

	if other.Len() != 0 {
		t.Fatalf("appended buffer still holds %d commands", other.Len())
	}
	got := a.Flush()
	if len(got) != 4 {
		t.Fatalf("merged buffer holds %d commands, want 4", len(got))
	}
	if sel, ok := got[1].(SelectFrame); !ok || sel.Path != "two.png" {
		t.Fatalf("command 1 = %#v, want SelectFrame{two.png}", got[1])
	}
	if _, ok := got[2].(ZoomIn); !ok {
		t.Fatalf("command 2 = %T, want ZoomIn", got[2])
	}
	if pan, ok := got[3].(Pan); !ok || pan.DX != 1 || pan.DY != 2 {
		t.Fatalf("command 3 = %#v, want Pan{1 2}", got[3])
	}
}

func TestCommandBufferProducersNeverValidate(t *testing.T) {
	// producers run while the UI iterates read-only state; a produced
	// command referencing a missing entity must queue fine and only
	// fail at dispatch
	b := NewCommandBuffer()
	b.SelectFrame("missing.png")
	if b.Len() != 1 {
		t.Fatalf("buffer length = %d, want 1", b.Len())
	}

	s := New(&DialogQueue{})
	for _, cmd := range b.Flush() {
		if err := s.ProcessCommand(cmd); err == nil {
			t.Fatal("expected dispatch error for command produced against missing state")
		}
	}
}
