// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents. It knows nothing
// about modes; the mode handler interprets the result.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionCursorUp
	p.keymap[tcell.KeyDown] = ActionCursorDown
	p.keymap[tcell.KeyLeft] = ActionCollapse
	p.keymap[tcell.KeyRight] = ActionExpand
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyHome] = ActionHome
	p.keymap[tcell.KeyEnd] = ActionEnd
	p.keymap[tcell.KeyEnter] = ActionConfirm
	p.keymap[tcell.KeyTab] = ActionIndent
	p.keymap[tcell.KeyBacktab] = ActionOutdent
	p.keymap[tcell.KeyBackspace] = ActionDeleteBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteBackward
	p.keymap[tcell.KeyDelete] = ActionDelete
	p.keymap[tcell.KeyEscape] = ActionQuit // checks modified status

	// --- Modifier Keys ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlR] = ActionRedo
	ctrlMap[tcell.KeyCtrlC] = ActionQuit
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	altMap := make(Keymap)
	altMap[tcell.KeyUp] = ActionMoveNodeUp
	altMap[tcell.KeyDown] = ActionMoveNodeDown
	altMap[tcell.KeyLeft] = ActionOutdent
	altMap[tcell.KeyRight] = ActionIndent
	p.modKeymap[tcell.ModAlt] = altMap

	// --- Runes ---
	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['k'] = ActionCursorUp
	p.runeKeymap['j'] = ActionCursorDown
	p.runeKeymap['h'] = ActionCollapse
	p.runeKeymap['l'] = ActionExpand
	p.runeKeymap['g'] = ActionHome
	p.runeKeymap['G'] = ActionEnd
	p.runeKeymap['p'] = ActionParent
	p.runeKeymap[' '] = ActionToggle
	p.runeKeymap['K'] = ActionMoveNodeUp
	p.runeKeymap['J'] = ActionMoveNodeDown
	p.runeKeymap['>'] = ActionIndent
	p.runeKeymap['<'] = ActionOutdent
	p.runeKeymap['d'] = ActionDelete
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['y'] = ActionYank
	p.runeKeymap['o'] = ActionAddSibling
	p.runeKeymap['a'] = ActionAddChild
	p.runeKeymap['r'] = ActionRename
}

// ProcessEvent returns the action bound to ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// tcell reports Ctrl+S as KeyCtrlS with ModCtrl; the key already implies it.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Simple keys. Shift is allowed so Shift+Tab and shifted arrows still map.
	if key != tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Runes. Shifted letters arrive as uppercase runes with ModShift on
	// some terminals.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}
