package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	Dump           *bool
	LogLevel       *string
	LogFilePath    *string
	HistoryLimit   *int
	ScrollOff      *int
	Watch          *bool
	StateFile      *bool
	Theme          *string
	ThemeFile      *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool
}

// DefineFlags registers grove's flags on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.Dump = fs.Bool("dump", false, "Print the outline to stdout and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.HistoryLimit = fs.Int("history", -1, "Maximum undo steps, 0 for unlimited - Overrides config file") // -1 means unset
	f.ScrollOff = fs.Int("scrolloff", -1, "Rows of context above/below the cursor - Overrides config file")
	f.Watch = fs.Bool("watch", true, "Reload the outline when it changes on disk - Overrides config file")
	f.StateFile = fs.Bool("state", true, "Read and write the <file>.state.json view state - Overrides config file")
	f.Theme = fs.String("theme", "", "Theme name - Overrides config file")
	f.ThemeFile = fs.String("theme-file", "", "Extra TOML theme file to load - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
}

// ParseFlags defines the flags on fs, parses args and returns the
// remaining non-flag arguments (the outline file path).
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set explicitly.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "history":
			if *f.HistoryLimit >= 0 {
				cfg.Outline.HistoryLimit = *f.HistoryLimit
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Outline.ScrollOff = *f.ScrollOff
			}
		case "watch":
			cfg.Outline.Watch = *f.Watch
		case "state":
			cfg.Outline.StateFile = *f.StateFile
		case "theme":
			if *f.Theme != "" {
				cfg.Theme.Name = *f.Theme
			}
		case "theme-file":
			cfg.Theme.File = *f.ThemeFile
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
