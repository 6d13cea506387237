// internal/input/action.go
package input

// Action represents an operation requested by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Selection ---
	ActionCursorUp
	ActionCursorDown
	ActionPageUp
	ActionPageDown
	ActionHome
	ActionEnd
	ActionParent

	// --- Collapse ---
	ActionCollapse
	ActionExpand
	ActionToggle
	ActionConfirm // Enter: toggle in normal mode, execute in command mode

	// --- Structure ---
	ActionMoveNodeUp
	ActionMoveNodeDown
	ActionIndent
	ActionOutdent
	ActionDelete
	ActionUndo
	ActionRedo
	ActionYank

	// --- Prompts (open the command line prefilled) ---
	ActionAddSibling
	ActionAddChild
	ActionRename

	// --- Command line ---
	ActionEnterCommandMode
	ActionInsertRune
	ActionDeleteBackward
)

var actionNames = map[Action]string{
	ActionUnknown:          "unknown",
	ActionQuit:             "quit",
	ActionForceQuit:        "force-quit",
	ActionSave:             "save",
	ActionCursorUp:         "cursor-up",
	ActionCursorDown:       "cursor-down",
	ActionPageUp:           "page-up",
	ActionPageDown:         "page-down",
	ActionHome:             "home",
	ActionEnd:              "end",
	ActionParent:           "parent",
	ActionCollapse:         "collapse",
	ActionExpand:           "expand",
	ActionToggle:           "toggle",
	ActionConfirm:          "confirm",
	ActionMoveNodeUp:       "move-up",
	ActionMoveNodeDown:     "move-down",
	ActionIndent:           "indent",
	ActionOutdent:          "outdent",
	ActionDelete:           "delete",
	ActionUndo:             "undo",
	ActionRedo:             "redo",
	ActionYank:             "yank",
	ActionAddSibling:       "add",
	ActionAddChild:         "add-child",
	ActionRename:           "rename",
	ActionEnterCommandMode: "command-mode",
	ActionInsertRune:       "insert-rune",
	ActionDeleteBackward:   "delete-backward",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press. Rune is set for every plain rune key,
// including bound ones, so the command line can still type them.
type ActionEvent struct {
	Action Action
	Rune   rune
}
