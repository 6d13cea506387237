// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style // the [Modified] indicator
	StyleMessage   tcell.Style // temporary messages
	StyleCommand   tcell.Style // the command line
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line of the screen. It shows the file, modified
// state, node count, history depth and mode, or a temporary message, or the
// command line while one is being typed.
type StatusBar struct {
	mu     sync.RWMutex
	config Config

	filePath   string
	isModified bool
	nodeCount  int
	undoDepth  int
	redoDepth  int
	editorMode string

	commandLine   string
	commandActive bool

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path and modified indicator.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetTreeInfo updates the node count.
func (sb *StatusBar) SetTreeInfo(count int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.nodeCount = count
}

// SetHistoryInfo updates the undo and redo depth.
func (sb *StatusBar) SetHistoryInfo(undo, redo int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.undoDepth = undo
	sb.redoDepth = redo
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetCommandLine shows text as the command being typed. It stays until
// ClearCommandLine.
func (sb *StatusBar) SetCommandLine(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandLine = text
	sb.commandActive = true
}

// ClearCommandLine hides the command line.
func (sb *StatusBar) ClearCommandLine() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandLine = ""
	sb.commandActive = false
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.messageActive() {
		return sb.tempMessage
	}
	return ""
}

func (sb *StatusBar) messageActive() bool {
	return !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
}

// segments returns the left and right parts of the default line. The
// modified flag is drawn separately so it can be styled.
func (sb *StatusBar) segments() (file, info, right string) {
	file = sb.filePath
	if file == "" {
		file = "[No Name]"
	}
	noun := "nodes"
	if sb.nodeCount == 1 {
		noun = "node"
	}
	info = fmt.Sprintf(" -- %d %s", sb.nodeCount, noun)
	right = fmt.Sprintf("undo:%d redo:%d", sb.undoDepth, sb.redoDepth)
	if sb.editorMode != "" {
		right += " -- " + sb.editorMode
	}
	return file, info, right + " "
}

// Draw renders the status bar on the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	if !sb.tempMessageTime.IsZero() && !sb.messageActive() {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	cfg := sb.config
	commandActive, commandLine := sb.commandActive, sb.commandLine
	message := sb.tempMessage
	modified := sb.isModified
	file, info, right := sb.segments()
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, cfg.StyleDefault)
	}

	switch {
	case commandActive:
		end := drawText(screen, 0, y, width, commandLine, cfg.StyleCommand)
		screen.ShowCursor(min(end, width-1), y)
		return
	case message != "":
		drawText(screen, 0, y, width, message, cfg.StyleMessage)
		return
	}

	x := drawText(screen, 0, y, width, file, cfg.StyleDefault)
	if modified {
		x = drawText(screen, x, y, width, " [Modified]", cfg.StyleModified)
	}
	x = drawText(screen, x, y, width, info, cfg.StyleDefault)

	// Right segment only when it fits after the left one.
	if rw := uniseg.StringWidth(right); x+1+rw <= width {
		drawText(screen, width-rw, y, width, right, cfg.StyleDefault)
	}
}

// drawText draws text from x up to maxX using grapheme widths and returns
// the column after the last cell drawn.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
