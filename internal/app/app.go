// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/bethropolis/grove/internal/config"
	"github.com/bethropolis/grove/internal/document"
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/input"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/modehandler"
	"github.com/bethropolis/grove/internal/outline"
	"github.com/bethropolis/grove/internal/plugin"
	"github.com/bethropolis/grove/internal/statusbar"
	"github.com/bethropolis/grove/internal/theme"
	"github.com/bethropolis/grove/internal/tui"
	"github.com/bethropolis/grove/internal/watcher"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

// Options configures NewApp.
type Options struct {
	FilePath  string
	Config    *config.Config
	ThemesDir string       // user theme directory, "" to skip
	Screen    tcell.Screen // nil opens the terminal
}

// App encapsulates the core components and main loop of the outliner.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *outline.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     plugin.EditorAPI
	watcher       *watcher.Watcher // nil when watching is off

	quit          chan struct{}
	redrawRequest chan struct{}
	afterDraw     func() // called on the draw goroutine after each frame
}

// NewApp opens the outline at opts.FilePath and sets up the screen. A
// missing file starts an empty outline that is created on first save.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	doc, err := openDocument(opts.FilePath)
	if err != nil {
		return nil, err
	}

	themeManager := newThemeManager(cfg, opts.ThemesDir)
	activeTheme := themeManager.Current()

	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme.GetStyle(theme.StyleDefault))
	} else {
		tuiManager, err = tui.New(activeTheme.GetStyle(theme.StyleDefault))
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	editorOpts := outline.Options{
		HistoryLimit: cfg.Outline.HistoryLimit,
		PageSize:     cfg.Outline.PageSize,
		IndentWidth:  cfg.Outline.IndentWidth,
		ScrollOff:    cfg.Outline.ScrollOff,
		StateFile:    cfg.Outline.StateFile,
		Events:       eventManager,
	}
	if cfg.Outline.SystemClipboard {
		editorOpts.Clipboard = outline.SystemClipboard()
	}
	editor := outline.New(opts.FilePath, doc, editorOpts)

	statusBar := statusbar.New(statusBarConfig(activeTheme))
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}
	a.editorAPI = newEditorAPI(a)

	a.subscribeEvents()
	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	if cfg.Outline.Watch && opts.FilePath != "" {
		w, err := watcher.New(opts.FilePath, cfg.Outline.WatchDebounce.Duration, a.reloadFromDisk)
		if err != nil {
			logger.Warnf("App: Not watching %s: %v", opts.FilePath, err)
		} else {
			a.watcher = w
		}
	}

	eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentData{FilePath: opts.FilePath})
	return a, nil
}

// openDocument loads path, or returns an empty document when it does not
// exist yet. The extension must name a supported format either way.
func openDocument(path string) (*document.Document, error) {
	if path == "" {
		return &document.Document{}, nil
	}
	if _, err := document.FormatFor(path); err != nil {
		return nil, err
	}
	doc, err := document.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("App: %s does not exist, starting a new outline", path)
		return &document.Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func newThemeManager(cfg *config.Config, themesDir string) *theme.Manager {
	m := theme.NewManager()
	if themesDir != "" {
		if _, err := m.LoadDir(themesDir); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
	if cfg.Theme.File != "" {
		if _, err := m.LoadFile(cfg.Theme.File); err != nil {
			logger.Warnf("App: Failed to load theme file: %v", err)
		}
	}
	if err := m.SetTheme(cfg.Theme.Name); err != nil {
		logger.Warnf("App: %v, keeping %s", err, m.Current().Name)
	}
	return m
}

func statusBarConfig(t *theme.Theme) statusbar.Config {
	return statusbar.Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleModified:  t.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		StyleCommand:   t.GetStyle(theme.StyleStatusBarCommand),
		MessageTimeout: config.MessageTimeout,
	}
}

// Run draws on the calling goroutine until the user quits or ctx is done.
// Terminal input and the file watcher run in an errgroup beside it.
func (a *App) Run(ctx context.Context) error {
	defer a.pluginManager.ShutdownPlugins()
	defer a.tuiManager.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.eventLoop()
		return nil
	})
	if a.watcher != nil {
		g.Go(func() error {
			if err := a.watcher.Run(gctx); err != nil {
				logger.Warnf("App: File watcher stopped: %v", err)
			}
			return nil
		})
	}

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("grove - Ctrl+S Save | : Command | ESC Quit")
	a.requestRedraw()

loop:
	for {
		select {
		case <-a.quit:
			break loop
		case <-ctx.Done():
			logger.Infof("App: Context done: %v", ctx.Err())
			break loop
		case <-a.redrawRequest:
			a.draw()
		}
	}

	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	if err := a.editor.SaveViewState(); err != nil {
		logger.Warnf("App: Failed to save view state: %v", err)
	}
	if a.editor.Modified() {
		logger.Warnf("App: Exited with unsaved changes.")
	}

	// Closing the screen makes PollEvent return nil, which ends eventLoop.
	cancel()
	a.tuiManager.Close()
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Infof("App: Exiting application.")
	return nil
}

// eventLoop handles terminal events, delegating keys to the mode handler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// draw clears the screen and redraws the outline and status bar.
func (a *App) draw() {
	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	_, rows := tui.Layout(height, a.editor.Title(), config.StatusBarHeight)
	a.editor.SetViewHeight(rows)
	a.updateStatusBarContent()
	logger.DebugTagf("draw", "draw: Screen Size (%d x %d), outline rows: %d", width, height, rows)

	a.tuiManager.Clear()
	screen.HideCursor()
	tui.DrawOutline(a.tuiManager, a.editor, activeTheme, config.StatusBarHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
	if a.afterDraw != nil {
		a.afterDraw()
	}
}

// updateStatusBarContent pushes the editor state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.editor.Path(), a.editor.Modified())
	a.statusBar.SetTreeInfo(a.editor.Count())
	undo, redo := a.editor.HistoryDepth()
	a.statusBar.SetHistoryInfo(undo, redo)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// reloadFromDisk runs on the watcher's goroutine after the file changed.
func (a *App) reloadFromDisk() {
	path := a.editor.Path()
	doc, err := document.Load(path)
	if err != nil {
		// Editors often write in several steps; a later event will retry.
		logger.Warnf("App: Reload of %s failed: %v", path, err)
		a.requestRedraw()
		return
	}
	if a.editor.SyncExternal(doc) == outline.SyncRefused {
		a.statusBar.SetTemporaryMessage("%s changed on disk; keeping unsaved edits (:revert to discard)", path)
	}
	a.requestRedraw()
}

// SetTheme activates the theme called name and restyles the screen.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.themeManager.Current().Name})
	return nil
}
