// cmd/grove/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stlog "log" // for failures before the logger is ready
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/grove/internal/app"
	"github.com/bethropolis/grove/internal/config"
	"github.com/bethropolis/grove/internal/document"
	"github.com/bethropolis/grove/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <outline.json|.yaml|.toml>\n\n", config.AppName)
		fs.PrintDefaults()
	}
	rest, err := flags.ParseFlags(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	var filePath string
	if len(rest) > 0 {
		filePath = rest[0]
	}

	// --- Configuration ---
	res, err := config.Load(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v; using defaults", err)
	}
	cfg := res.Config

	// --- Logger Initialization ---
	output, closeLog, err := cfg.Logger.OpenOutput(config.DefaultLogPath())
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()
	logger.EnableFilterDebug(*flags.DebugLog)
	logger.InitWithConfig(cfg.Logger.Level(), output, &cfg.Logger)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if res.Path != "" {
		logger.Debugf("Config file: %s", res.Path)
	}
	for _, key := range res.Unknown {
		logger.Warnf("Unknown config key: %s", key)
	}

	// --- Dump mode ---
	if *flags.Dump {
		if err := dump(os.Stdout, filePath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			return 1
		}
		return 0
	}

	// --- Create and Run App ---
	groveApp, err := app.NewApp(app.Options{
		FilePath:  filePath,
		Config:    cfg,
		ThemesDir: config.ThemesDir(),
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := groveApp.Run(ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}

	logger.Infof("%s finished.", config.AppName)
	return 0
}

// dump prints the outline as indented text, hiding the children of nodes
// collapsed in the view-state sidecar.
func dump(w io.Writer, path string, cfg *config.Config) error {
	if path == "" {
		return fmt.Errorf("-dump needs an outline file")
	}
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	st := document.DefaultViewState()
	if cfg.Outline.StateFile {
		st = document.LoadState(document.StatePath(path))
	}
	if doc.Title != "" {
		fmt.Fprintln(w, doc.Title)
	}
	return document.WriteOutline(w, doc.Nodes, st.CollapsedSet(doc.Nodes), cfg.Outline.IndentWidth)
}
