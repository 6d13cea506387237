package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is one style in a theme file. Unset fields inherit from the
// theme's Default style.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file:
//
//	name = "Solarized"
//	is_dark = true
//	[styles.Default]
//	fg = "#839496"
//	[styles.Selection]
//	reverse = true
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.DecodeFile(filePath, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys in file '%s': %v", tomlTheme.Name, filePath, metadata.Undecoded())
	}
	if tomlTheme.Name == "" {
		tomlTheme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	baseStyle := tcell.StyleDefault
	if def, ok := tomlTheme.Styles[StyleDefault]; ok {
		var parseErr error
		baseStyle, parseErr = convertTomlStyle(def, tcell.StyleDefault)
		if parseErr != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using tcell default as base: %v", theme.Name, parseErr)
			baseStyle = tcell.StyleDefault
		}
	}
	theme.Styles[StyleDefault] = baseStyle

	for name, def := range tomlTheme.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.Debugf("Loaded theme '%s' from '%s' (%d styles)", theme.Name, filePath, len(theme.Styles))
	return theme, nil
}

// convertTomlStyle applies def on top of base.
func convertTomlStyle(def TomlStyleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColorString accepts "#rrggbb", a W3C/X11 color name, "reset" or
// "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
	}
	color := tcell.GetColor(s)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
	}
	return color, nil
}
