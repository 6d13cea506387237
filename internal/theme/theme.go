// Package theme maps style names used by the outline view and status bar
// to tcell styles, with built-in themes and optional TOML theme files.
package theme

import (
	"strings"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the drawing code.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleDisabled          = "Disabled"
	StyleMarker            = "Marker"
	StyleMarkerCollapsed   = "Marker.collapsed"
	StyleLeafMarker        = "Marker.leaf"
	StyleTitle             = "Title"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarCommand  = "StatusBarCommand"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. Dotted names fall back to their base
// name ("Marker.leaf" -> "Marker"), then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Built-in themes.
var (
	DefaultDark  = newDefaultDark()
	DefaultLight = newDefaultLight()
)

func newDefaultDark() Theme {
	bar := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name:   "Default Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleDisabled:          base.Foreground(muted).Italic(true),
			StyleMarker:            base.Foreground(blue),
			StyleMarkerCollapsed:   base.Foreground(yellow).Bold(true),
			StyleLeafMarker:        base.Foreground(muted),
			StyleTitle:             base.Foreground(blue).Bold(true),
			StyleStatusBar:         tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bar).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(bar).Foreground(green).Bold(true),
		},
	}
}

func newDefaultLight() Theme {
	bar := tcell.NewHexColor(0xe5e5e6)
	fg := tcell.NewHexColor(0x383a42)
	muted := tcell.NewHexColor(0xa0a1a7)
	orange := tcell.NewHexColor(0xc18401)
	green := tcell.NewHexColor(0x50a14f)
	blue := tcell.NewHexColor(0x4078f2)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name:   "Default Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleDisabled:          base.Foreground(muted).Italic(true),
			StyleMarker:            base.Foreground(blue),
			StyleMarkerCollapsed:   base.Foreground(orange).Bold(true),
			StyleLeafMarker:        base.Foreground(muted),
			StyleTitle:             base.Foreground(blue).Bold(true),
			StyleStatusBar:         tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bar).Foreground(orange),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(bar).Foreground(green).Bold(true),
		},
	}
}
