package modehandler

import (
	"strings"
	"testing"

	"github.com/bethropolis/grove/internal/document"
	"github.com/bethropolis/grove/internal/input"
	"github.com/bethropolis/grove/internal/outline"
	"github.com/bethropolis/grove/internal/statusbar"
	"github.com/bethropolis/grove/internal/tree"
	"github.com/gdamore/tcell/v2"
)

type harness struct {
	mh   *ModeHandler
	ed   *outline.Editor
	sb   *statusbar.StatusBar
	quit chan struct{}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc := &document.Document{Nodes: []*tree.Node{
		{ID: "1", Label: "One", Children: []*tree.Node{{ID: "2", Label: "Two"}}},
		{ID: "3", Label: "Three"},
	}}
	h := &harness{
		ed:   outline.New("", doc, outline.Options{}),
		sb:   statusbar.New(statusbar.DefaultConfig()),
		quit: make(chan struct{}),
	}
	h.mh = New(Config{
		Editor:         h.ed,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      h.sb,
		QuitSignal:     h.quit,
	})
	return h
}

func (h *harness) key(k tcell.Key) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) typeRunes(s string) {
	for _, r := range s {
		h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) quitClosed() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

func selectedLabel(t *testing.T, ed *outline.Editor) string {
	t.Helper()
	sel, ok := ed.Selected()
	if !ok {
		t.Fatal("no selection")
	}
	return sel.Node.Label
}

func TestNormalModeNavigationAndStructure(t *testing.T) {
	h := newHarness(t)

	h.typeRunes("j")
	if got := selectedLabel(t, h.ed); got != "Two" {
		t.Fatalf("after j selected %q, want Two", got)
	}
	h.key(tcell.KeyBacktab)
	if got := len(h.ed.Forest()); got != 3 {
		t.Fatalf("after outdent top level has %d nodes, want 3", got)
	}
	h.typeRunes("u")
	if got := len(h.ed.Forest()); got != 2 {
		t.Fatalf("after undo top level has %d nodes, want 2", got)
	}
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if got := len(h.ed.Forest()); got != 3 {
		t.Fatalf("after redo top level has %d nodes, want 3", got)
	}
}

func TestMoveRefusedShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("K") // first node cannot move up
	if got := h.sb.Message(); got != "Cannot up here" {
		t.Errorf("message = %q", got)
	}
}

func TestCommandModeTypesBoundRunes(t *testing.T) {
	h := newHarness(t)
	var got []string
	if err := h.mh.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	h.typeRunes(":")
	if h.mh.GetCurrentMode() != ModeCommand {
		t.Fatalf("mode = %v, want COMMAND", h.mh.GetCurrentMode())
	}
	h.typeRunes("echo jk dü")
	h.key(tcell.KeyBackspace2)
	if buf := h.mh.GetCommandBuffer(); buf != "echo jk d" {
		t.Fatalf("buffer = %q", buf)
	}
	h.key(tcell.KeyEnter)

	if h.mh.GetCurrentMode() != ModeNormal {
		t.Errorf("mode after Enter = %v, want NORMAL", h.mh.GetCurrentMode())
	}
	if strings.Join(got, ",") != "jk,d" {
		t.Errorf("args = %v", got)
	}
	if sel := selectedLabel(t, h.ed); sel != "One" {
		t.Errorf("typing j in command mode moved the cursor to %q", sel)
	}
}

func TestTextCommandKeepsSpacing(t *testing.T) {
	h := newHarness(t)
	var text string
	var words []string
	h.mh.RegisterTextCommand("say", func(s string) error {
		text = s
		return nil
	})
	h.mh.RegisterCommand("words", func(args []string) error {
		words = args
		return nil
	})

	h.mh.ExecuteCommand("say two  spaces ")
	if text != "two  spaces " {
		t.Errorf("text = %q, want %q", text, "two  spaces ")
	}
	h.mh.ExecuteCommand("  words   a  b ")
	if strings.Join(words, ",") != "a,b" {
		t.Errorf("args = %q", words)
	}

	h.mh.RegisterTextCommand("rename", func(s string) error { return h.ed.Rename(s) })
	h.typeRunes("r")
	h.typeRunes("  x")
	h.key(tcell.KeyEnter)
	if got := selectedLabel(t, h.ed); got != "One  x" {
		t.Errorf("label = %q, want %q", got, "One  x")
	}
}

func TestCommandModeCancelAndUnknown(t *testing.T) {
	h := newHarness(t)
	h.typeRunes(":nope")
	h.key(tcell.KeyEscape)
	if h.mh.GetCurrentMode() != ModeNormal || h.quitClosed() {
		t.Fatal("Escape in command mode should cancel, not quit")
	}

	h.typeRunes(":nope")
	h.key(tcell.KeyEnter)
	if got := h.sb.Message(); got != "Unknown command: nope" {
		t.Errorf("message = %q", got)
	}

	h.typeRunes(":")
	h.key(tcell.KeyBackspace2)
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Error("Backspace on empty command line should leave command mode")
	}
}

func TestRenamePromptIsPrefilled(t *testing.T) {
	h := newHarness(t)
	var label string
	h.mh.RegisterCommand("rename", func(args []string) error {
		label = strings.Join(args, " ")
		return h.ed.Rename(label)
	})

	h.typeRunes("r")
	if buf := h.mh.GetCommandBuffer(); buf != "rename One" {
		t.Fatalf("buffer = %q", buf)
	}
	h.typeRunes("!")
	h.key(tcell.KeyEnter)
	if got := selectedLabel(t, h.ed); got != "One!" {
		t.Errorf("label = %q", got)
	}
}

func TestRegisterCommandErrors(t *testing.T) {
	h := newHarness(t)
	noop := func([]string) error { return nil }
	if err := h.mh.RegisterCommand("", noop); err == nil {
		t.Error("empty name accepted")
	}
	if err := h.mh.RegisterCommand("x", noop); err != nil {
		t.Fatal(err)
	}
	if err := h.mh.RegisterCommand("x", noop); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestQuitWhenClean(t *testing.T) {
	h := newHarness(t)
	h.key(tcell.KeyEscape)
	if !h.quitClosed() {
		t.Fatal("quit not signalled")
	}
	// A second request must not close the channel twice.
	h.mh.RequestQuit(true)
}

func TestQuitWithUnsavedChangesNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("d")
	if !h.ed.Modified() {
		t.Fatal("delete did not modify the outline")
	}

	h.key(tcell.KeyEscape)
	if h.quitClosed() {
		t.Fatal("quit with unsaved changes on first Escape")
	}
	h.typeRunes("j") // any other action resets the confirmation
	h.key(tcell.KeyEscape)
	if h.quitClosed() {
		t.Fatal("confirmation survived another action")
	}
	h.key(tcell.KeyEscape)
	if !h.quitClosed() {
		t.Fatal("second Escape did not quit")
	}
}

func TestForceQuit(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("d")
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !h.quitClosed() {
		t.Fatal("Ctrl+Q did not quit")
	}
}

func TestYankWithoutClipboard(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("y")
	if got := h.sb.Message(); got != "No clipboard available" {
		t.Errorf("message = %q", got)
	}
}
