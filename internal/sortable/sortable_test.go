package sortable

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"from out of range", 4, 0, []string{"a", "b", "c", "d"}},
		{"to out of range", 0, -1, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got := Move(in, tt.from, tt.to)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if !reflect.DeepEqual(in, []string{"a", "b", "c", "d"}) {
				t.Errorf("input modified: %v", in)
			}
		})
	}
}

func TestPropertyMoveRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(rapid.Int(), 1, 20).Draw(t, "items")
		from := rapid.IntRange(0, len(items)-1).Draw(t, "from")
		to := rapid.IntRange(0, len(items)-1).Draw(t, "to")

		moved := Move(items, from, to)
		if moved[to] != items[from] {
			t.Fatalf("expected items[%d] at %d", from, to)
		}
		if back := Move(moved, to, from); !reflect.DeepEqual(back, items) {
			t.Fatalf("round trip: expected %v, got %v", items, back)
		}
	})
}

func newTestBoard() *Board[string, string] {
	b := NewBoard[string, string]("todo", "doing", "done")
	b = b.Set("todo", []string{"t1", "t2", "t3"})
	return b.Set("doing", []string{"d1"})
}

func TestBoardTransfer(t *testing.T) {
	b := newTestBoard()

	got := b.Transfer("todo", 1, "doing", 0)
	if !reflect.DeepEqual(got.Items("todo"), []string{"t1", "t3"}) {
		t.Errorf("source: got %v", got.Items("todo"))
	}
	if !reflect.DeepEqual(got.Items("doing"), []string{"t2", "d1"}) {
		t.Errorf("destination: got %v", got.Items("doing"))
	}
	if !reflect.DeepEqual(b.Items("todo"), []string{"t1", "t2", "t3"}) {
		t.Errorf("original board modified: %v", b.Items("todo"))
	}

	got = b.Transfer("todo", 0, "done", 99)
	if !reflect.DeepEqual(got.Items("done"), []string{"t1"}) {
		t.Errorf("clamped append into empty container: got %v", got.Items("done"))
	}

	got = b.Transfer("todo", 0, "todo", 99)
	if !reflect.DeepEqual(got.Items("todo"), []string{"t2", "t3", "t1"}) {
		t.Errorf("same-container move: got %v", got.Items("todo"))
	}

	for _, bad := range []struct {
		from string
		idx  int
		to   string
	}{
		{"nope", 0, "todo"},
		{"todo", 5, "doing"},
		{"todo", 0, "nope"},
	} {
		got = b.Transfer(bad.from, bad.idx, bad.to, 0)
		if got.Len() != b.Len() || !reflect.DeepEqual(got.Items("todo"), b.Items("todo")) {
			t.Errorf("invalid transfer %+v changed the board", bad)
		}
	}
}

func TestBoardFindAndKeys(t *testing.T) {
	b := newTestBoard()
	key, idx, ok := b.Find(func(s string) bool { return s == "t3" })
	if !ok || key != "todo" || idx != 2 {
		t.Errorf("expected todo/2, got %s/%d (%v)", key, idx, ok)
	}
	if _, _, ok := b.Find(func(s string) bool { return s == "zz" }); ok {
		t.Error("expected not found")
	}
	if !reflect.DeepEqual(b.Keys(), []string{"todo", "doing", "done"}) {
		t.Errorf("unexpected key order %v", b.Keys())
	}
	if got := b.Set("archive", []string{"a"}).Keys(); got[len(got)-1] != "archive" {
		t.Errorf("expected new container appended, got %v", got)
	}
}

func TestPropertyTransferConservesItems(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := []int{0, 1, 2}
		b := NewBoard[int, int](keys...)
		next := 0
		for _, k := range keys {
			n := rapid.IntRange(0, 5).Draw(t, "n")
			items := make([]int, n)
			for i := range items {
				items[i] = next
				next++
			}
			b = b.Set(k, items)
		}
		steps := rapid.IntRange(0, 10).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			from := rapid.SampledFrom(keys).Draw(t, "from")
			to := rapid.SampledFrom(keys).Draw(t, "to")
			b = b.Transfer(from, rapid.IntRange(-1, 6).Draw(t, "fromIdx"), to, rapid.IntRange(-1, 8).Draw(t, "toIdx"))
		}
		if b.Len() != next {
			t.Fatalf("expected %d items, got %d", next, b.Len())
		}
		for v := 0; v < next; v++ {
			if _, _, ok := b.Find(func(x int) bool { return x == v }); !ok {
				t.Fatalf("item %d lost", v)
			}
		}
	})
}
