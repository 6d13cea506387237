package outline

import "github.com/atotto/clipboard"

// Clipboard receives yanked text.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the OS clipboard, or nil when no clipboard
// utility is available.
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}
