package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/modehandler"
	"github.com/bethropolis/grove/internal/tree"
)

var errUnsaved = errors.New("unsaved changes (add ! to override)")

// registerAppCommands registers the built-in ':' commands.
func registerAppCommands(a *App) {
	ed := a.editor
	mh := a.modeHandler
	sb := a.statusBar

	needLabel := func(usage string, fn func(label string) error) modehandler.TextCommandFunc {
		return func(label string) error {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("usage: %s", usage)
			}
			return fn(label)
		}
	}

	save := func(text string) error {
		var err error
		if path := strings.TrimSpace(text); path != "" {
			err = ed.SaveAs(path)
		} else {
			err = ed.Save()
		}
		if err != nil {
			return err
		}
		sb.SetTemporaryMessage("Saved %s (%d nodes)", ed.Path(), ed.Count())
		return nil
	}

	textCommands := map[string]modehandler.TextCommandFunc{
		"w": save,
		"wq": func(text string) error {
			if err := save(text); err != nil {
				return err
			}
			mh.RequestQuit(true)
			return nil
		},
		"add": needLabel(":add <label>", func(label string) error {
			ed.AddSibling(label)
			return nil
		}),
		"child": needLabel(":child <label>", func(label string) error {
			ed.AddChild(label)
			return nil
		}),
		"rename": needLabel(":rename <label>", ed.Rename),
	}

	commands := map[string]modehandler.CommandFunc{
		"q": func([]string) error {
			if !mh.RequestQuit(false) {
				return errUnsaved
			}
			return nil
		},
		"q!": func([]string) error {
			mh.RequestQuit(true)
			return nil
		},
		"move": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: :move up|down|indent|outdent")
			}
			dir, err := tree.ParseDirection(args[0])
			if err != nil {
				return err
			}
			if !ed.Move(dir) {
				sb.SetTemporaryMessage("Cannot %s here", dir)
			}
			return nil
		},
		"revert": func([]string) error {
			if ed.Revert() {
				sb.SetTemporaryMessage("Reverted to the saved outline")
			} else {
				sb.SetTemporaryMessage("Nothing to revert")
			}
			return nil
		},
		"collapseall": func([]string) error {
			ed.CollapseAll()
			return nil
		},
		"expandall": func([]string) error {
			ed.ExpandAll()
			return nil
		},
		"goto": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: :goto <id>")
			}
			if !ed.SelectID(tree.ID(args[0])) {
				return fmt.Errorf("no node with id %q", args[0])
			}
			return nil
		},
		"theme": func(args []string) error {
			if len(args) == 0 {
				sb.SetTemporaryMessage("Current theme: %s", a.themeManager.Current().Name)
				return nil
			}
			themeName := strings.Join(args, " ")
			if err := a.SetTheme(themeName); err != nil {
				return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(a.themeManager.ListThemes(), ", "))
			}
			sb.SetTemporaryMessage("Theme set to: %s", a.themeManager.Current().Name)
			return nil
		},
		"themes": func([]string) error {
			sb.SetTemporaryMessage("Available themes: %s", strings.Join(a.themeManager.ListThemes(), ", "))
			return nil
		},
	}

	for name, fn := range textCommands {
		if err := mh.RegisterTextCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
	for name, fn := range commands {
		if err := mh.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}
