// internal/modehandler/modehandler.go
package modehandler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/grove/internal/input"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/outline"
	"github.com/bethropolis/grove/internal/statusbar"
	"github.com/bethropolis/grove/internal/tree"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

// CommandFunc runs a ':' command. args are the whitespace separated words
// after the command name.
type CommandFunc func(args []string) error

// TextCommandFunc runs a ':' command that takes free text. text is
// everything after the first space following the command name, unchanged.
type TextCommandFunc func(text string) error

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *outline.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	quitOnce       sync.Once

	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]TextCommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *outline.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // closed once to end the app
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	mh := &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]TextCommandFunc),
	}
	mh.statusBar.SetEditorMode(ModeNormal.String())
	return mh
}

// HandleKeyEvent decides what to do based on current mode and key event.
// It returns true if the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// handleActionNormal runs outline actions.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	ed := mh.editor
	redraw := true

	switch actionEvent.Action {
	// --- Mode Switching ---
	case input.ActionEnterCommandMode:
		mh.enterCommandMode("")
	case input.ActionAddSibling:
		mh.enterCommandMode("add ")
	case input.ActionAddChild:
		mh.enterCommandMode("child ")
	case input.ActionRename:
		sel, ok := ed.Selected()
		if !ok {
			mh.statusBar.SetTemporaryMessage("Nothing selected")
			break
		}
		mh.enterCommandMode("rename " + sel.Node.Label)

	// --- Quit/Save ---
	case input.ActionQuit:
		if !mh.RequestQuit(mh.forceQuitPending) {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
	case input.ActionForceQuit:
		mh.RequestQuit(true)
	case input.ActionSave:
		mh.save()

	// --- Selection ---
	case input.ActionCursorUp:
		ed.MoveCursor(-1)
	case input.ActionCursorDown:
		ed.MoveCursor(1)
	case input.ActionPageUp:
		ed.PageUp()
	case input.ActionPageDown:
		ed.PageDown()
	case input.ActionHome:
		ed.Home()
	case input.ActionEnd:
		ed.End()
	case input.ActionParent:
		ed.JumpToParent()

	// --- Collapse ---
	case input.ActionCollapse:
		ed.Collapse()
	case input.ActionExpand:
		ed.Expand()
	case input.ActionToggle, input.ActionConfirm:
		ed.ToggleCollapse()

	// --- Structure ---
	case input.ActionMoveNodeUp:
		mh.move(tree.Up)
	case input.ActionMoveNodeDown:
		mh.move(tree.Down)
	case input.ActionIndent:
		mh.move(tree.Indent)
	case input.ActionOutdent:
		mh.move(tree.Outdent)
	case input.ActionDelete:
		if !ed.Delete() {
			mh.statusBar.SetTemporaryMessage("Nothing to delete")
		}
	case input.ActionUndo:
		if !ed.Undo() {
			mh.statusBar.SetTemporaryMessage("Already at oldest change")
		}
	case input.ActionRedo:
		if !ed.Redo() {
			mh.statusBar.SetTemporaryMessage("Already at newest change")
		}
	case input.ActionYank:
		mh.yank()

	default:
		redraw = false
	}

	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionUnknown {
		mh.forceQuitPending = false
	}
	return redraw
}

func (mh *ModeHandler) move(dir tree.Direction) {
	if !mh.editor.Move(dir) {
		mh.statusBar.SetTemporaryMessage("Cannot %s here", dir)
	}
}

func (mh *ModeHandler) save() {
	if err := mh.editor.Save(); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		logger.Errorf("ModeHandler: Save failed: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Saved %s", mh.editor.Path())
}

func (mh *ModeHandler) yank() {
	text, err := mh.editor.Yank()
	switch {
	case errors.Is(err, outline.ErrNoClipboard):
		mh.statusBar.SetTemporaryMessage("No clipboard available")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Yank failed: %v", err)
		logger.Debugf("ModeHandler: Yank error: %v", err)
	default:
		mh.statusBar.SetTemporaryMessage("Yanked %d bytes", len(text))
	}
}

// RequestQuit closes the quit signal unless there are unsaved changes and
// force is false. It returns true if the app will quit.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if !force && mh.editor.Modified() {
		return false
	}
	mh.quitOnce.Do(func() {
		logger.Debugf("ModeHandler: Quit requested (force=%v)", force)
		close(mh.quitSignal)
	})
	return true
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc CommandFunc) error {
	return mh.RegisterTextCommand(name, func(text string) error {
		return cmdFunc(strings.Fields(text))
	})
}

// RegisterTextCommand adds a command that receives its argument text with
// spacing preserved, for labels and file names.
func (mh *ModeHandler) RegisterTextCommand(name string, cmdFunc TextCommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, or "" in normal mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
