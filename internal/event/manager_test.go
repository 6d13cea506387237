package event

import (
	"reflect"
	"testing"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeTreeChanged, func(e Event) bool {
		got = append(got, "first:"+e.Data.(TreeChangedData).Reason)
		return false
	})
	m.Subscribe(TypeTreeChanged, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeTreeChanged, func(e Event) bool {
		got = append(got, "third")
		return false
	})
	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		got = append(got, "cursor")
		return false
	})

	m.Dispatch(TypeTreeChanged, TreeChangedData{Reason: "indent"})
	want := []string{"first:indent", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	unsubscribe := m.Subscribe(TypeDocumentSaved, func(Event) bool {
		calls++
		return false
	})
	m.Dispatch(TypeDocumentSaved, DocumentData{FilePath: "a.json"})
	unsubscribe()
	unsubscribe()
	m.Dispatch(TypeDocumentSaved, DocumentData{FilePath: "a.json"})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	inner := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		m.Subscribe(TypeAppReady, func(Event) bool {
			inner++
			return false
		})
		return false
	})
	m.Dispatch(TypeAppReady, nil)
	if inner != 0 {
		t.Errorf("handler added during dispatch should not run in the same dispatch")
	}
	m.Dispatch(TypeAppReady, nil)
	if inner != 1 {
		t.Errorf("expected added handler to run on next dispatch, got %d", inner)
	}
}

func TestNilManagerDispatch(t *testing.T) {
	var m *Manager
	m.Dispatch(TypeAppQuit, nil)
}

func TestTypeString(t *testing.T) {
	if TypeHistoryChanged.String() != "history-changed" || Type(99).String() != "unknown" {
		t.Errorf("unexpected names %q %q", TypeHistoryChanged, Type(99))
	}
}
