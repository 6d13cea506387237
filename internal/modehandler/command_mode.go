package modehandler

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/grove/internal/input"
	"github.com/bethropolis/grove/internal/logger"
)

func (mh *ModeHandler) enterCommandMode(prefill string) {
	mh.currentMode = ModeCommand
	mh.cmdBuffer = prefill
	mh.statusBar.SetEditorMode(ModeCommand.String())
	mh.statusBar.SetCommandLine(":" + mh.cmdBuffer)
	logger.Debugf("ModeHandler: Entering Command Mode")
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.SetEditorMode(ModeNormal.String())
	mh.statusBar.ClearCommandLine()
}

// handleActionCommand edits and runs the command line. Every plain rune is
// typed, whatever it is bound to in normal mode.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	if actionEvent.Rune != 0 {
		mh.cmdBuffer += string(actionEvent.Rune)
		mh.statusBar.SetCommandLine(":" + mh.cmdBuffer)
		return true
	}

	switch actionEvent.Action {
	case input.ActionDeleteBackward:
		if mh.cmdBuffer == "" {
			mh.exitCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]
		mh.statusBar.SetCommandLine(":" + mh.cmdBuffer)

	case input.ActionConfirm:
		cmd := mh.cmdBuffer
		mh.exitCommandMode()
		mh.ExecuteCommand(cmd)

	case input.ActionQuit:
		mh.exitCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	case input.ActionForceQuit:
		mh.exitCommandMode()
		mh.RequestQuit(true)

	default:
		return false
	}
	return true
}

// ExecuteCommand parses and runs cmdStr, a command line without the
// leading ':'. Failures are shown on the status bar.
func (mh *ModeHandler) ExecuteCommand(cmdStr string) {
	cmdName, text, _ := strings.Cut(strings.TrimLeft(cmdStr, " \t"), " ")
	if cmdName == "" {
		return
	}

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with %q", cmdName, text)
	if err := cmdFunc(text); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}
