package history

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// TestUndoSequence walks the commit(1), commit(2), undo x3 scenario
func TestUndoSequence(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)

	got, ok := h.Undo()
	if !ok || got != 1 {
		t.Fatalf("first undo: expected 1, got %d (ok=%v)", got, ok)
	}
	if !reflect.DeepEqual(h.Past(), []int{0}) || !reflect.DeepEqual(h.Future(), []int{2}) {
		t.Errorf("after first undo: past=%v future=%v", h.Past(), h.Future())
	}

	got, ok = h.Undo()
	if !ok || got != 0 {
		t.Fatalf("second undo: expected 0, got %d (ok=%v)", got, ok)
	}
	if len(h.Past()) != 0 || !reflect.DeepEqual(h.Future(), []int{1, 2}) {
		t.Errorf("after second undo: past=%v future=%v", h.Past(), h.Future())
	}

	if _, ok = h.Undo(); ok {
		t.Error("third undo: expected no-op signal")
	}
	if h.Present() != 0 || !reflect.DeepEqual(h.Future(), []int{1, 2}) {
		t.Errorf("no-op undo changed state: present=%d future=%v", h.Present(), h.Future())
	}
}

func TestRedo(t *testing.T) {
	h := New("a")
	h.Commit("b")
	h.Commit("c")
	h.Undo()
	h.Undo()

	got, ok := h.Redo()
	if !ok || got != "b" {
		t.Fatalf("expected redo to b, got %q (ok=%v)", got, ok)
	}
	if !reflect.DeepEqual(h.Past(), []string{"a"}) || !reflect.DeepEqual(h.Future(), []string{"c"}) {
		t.Errorf("past=%v future=%v", h.Past(), h.Future())
	}
	got, _ = h.Redo()
	if got != "c" {
		t.Errorf("expected c, got %q", got)
	}
	if _, ok = h.Redo(); ok {
		t.Error("expected no-op signal with empty future")
	}
	if h.Present() != "c" {
		t.Errorf("no-op redo changed present to %q", h.Present())
	}
}

func TestCommitClearsFuture(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	h.Commit(9)
	if h.CanRedo() {
		t.Error("expected commit to clear redo state")
	}
	if _, ok := h.Redo(); ok {
		t.Error("expected redo no-op after commit")
	}
	if !reflect.DeepEqual(h.Past(), []int{0, 1}) {
		t.Errorf("expected past [0 1], got %v", h.Past())
	}
}

func TestSyncKeepsStacks(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)
	h.Undo()

	h.Sync(42)
	if h.Present() != 42 {
		t.Errorf("expected present 42, got %d", h.Present())
	}
	if !reflect.DeepEqual(h.Past(), []int{0}) || !reflect.DeepEqual(h.Future(), []int{2}) {
		t.Errorf("sync touched stacks: past=%v future=%v", h.Past(), h.Future())
	}
	got, _ := h.Redo()
	if got != 2 || !reflect.DeepEqual(h.Past(), []int{0, 42}) {
		t.Errorf("redo after sync: got %d past=%v", got, h.Past())
	}
}

func TestReset(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)
	h.Undo()

	if got := h.Reset(7); got != 7 {
		t.Errorf("expected reset to return 7, got %d", got)
	}
	if h.CanUndo() || h.CanRedo() || h.Present() != 7 {
		t.Errorf("expected clean history at 7, got present=%d undo=%v redo=%v",
			h.Present(), h.CanUndo(), h.CanRedo())
	}
}

func TestWithLimit(t *testing.T) {
	h := New(0, WithLimit(2))
	for i := 1; i <= 5; i++ {
		h.Commit(i)
	}
	if !reflect.DeepEqual(h.Past(), []int{3, 4}) {
		t.Errorf("expected oldest entries evicted, got %v", h.Past())
	}
	h.Undo()
	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Error("expected only two undo steps")
	}
	if h.Present() != 3 {
		t.Errorf("expected present 3, got %d", h.Present())
	}

	unlimited := New(0, WithLimit(0))
	for i := 1; i <= 50; i++ {
		unlimited.Commit(i)
	}
	if past, _ := unlimited.Len(); past != 50 {
		t.Errorf("expected 50 undo steps, got %d", past)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	h := New(0)
	h.Commit(1)
	past := h.Past()
	past[0] = 99
	if h.Past()[0] != 0 {
		t.Error("Past must return a copy")
	}
}

type op int

const (
	opCommit op = iota
	opUndo
	opRedo
	opSync
)

// model is a reference implementation using plain slices.
type model struct {
	present      int
	past, future []int
}

func TestPropertyMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := New(0)
		m := model{}
		steps := rapid.IntRange(0, 40).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			switch op(rapid.IntRange(0, 3).Draw(t, "op")) {
			case opCommit:
				v := rapid.Int().Draw(t, "value")
				h.Commit(v)
				m.past = append(m.past, m.present)
				m.present, m.future = v, nil
			case opSync:
				v := rapid.Int().Draw(t, "value")
				h.Sync(v)
				m.present = v
			case opUndo:
				got, ok := h.Undo()
				if ok != (len(m.past) > 0) {
					t.Fatalf("undo ok=%v with model past %v", ok, m.past)
				}
				if ok {
					m.future = append([]int{m.present}, m.future...)
					m.present = m.past[len(m.past)-1]
					m.past = m.past[:len(m.past)-1]
					if got != m.present {
						t.Fatalf("undo returned %d, want %d", got, m.present)
					}
				}
			case opRedo:
				got, ok := h.Redo()
				if ok != (len(m.future) > 0) {
					t.Fatalf("redo ok=%v with model future %v", ok, m.future)
				}
				if ok {
					m.past = append(m.past, m.present)
					m.present = m.future[0]
					m.future = m.future[1:]
					if got != m.present {
						t.Fatalf("redo returned %d, want %d", got, m.present)
					}
				}
			}

			if h.Present() != m.present {
				t.Fatalf("present %d, want %d", h.Present(), m.present)
			}
			if h.CanUndo() != (len(m.past) > 0) || h.CanRedo() != (len(m.future) > 0) {
				t.Fatalf("capability flags drifted from stacks")
			}
		}
	})
}

func TestPropertyUndoRedoIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Int(), 1, 20).Draw(t, "values")
		h := New(0)
		for _, v := range values {
			h.Commit(v)
		}
		undos := rapid.IntRange(0, len(values)).Draw(t, "undos")
		for i := 0; i < undos; i++ {
			h.Undo()
		}
		before := h.Present()
		if _, ok := h.Undo(); ok {
			got, _ := h.Redo()
			if got != before {
				t.Fatalf("undo then redo: expected %d, got %d", before, got)
			}
		}
		if len(values) >= 2 && undos == 0 {
			h2 := New(0)
			for _, v := range values {
				h2.Commit(v)
			}
			got, _ := h2.Undo()
			if got != values[len(values)-2] {
				t.Fatalf("undo after commits: expected %d, got %d", values[len(values)-2], got)
			}
		}
	})
}
