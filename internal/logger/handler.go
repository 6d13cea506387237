package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add custom filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config // Reference to processed config
}

// newFilteringHandler creates a handler with filtering capabilities.
func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Helper function for set lookup
func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// allowed applies the disable-then-enable rule for one dimension.
func allowed(value string, enabled, disabled map[string]struct{}) bool {
	value = strings.ToLower(value)
	if foundInSet(disabled, value) {
		return false
	}
	if enabled != nil && !foundInSet(enabled, value) {
		return false
	}
	return true
}

// sourceOf returns the package directory and file name for the record's PC.
func sourceOf(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] Message: Level=%s, Msg=%s\n", r.Level, r.Message)
	}

	if pkg, file, ok := sourceOf(r); ok {
		if !allowed(pkg, h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: package '%s'\n", pkg)
			}
			return nil
		}
		if !allowed(file, h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: file '%s'\n", file)
			}
			return nil
		}
	}

	var tagValue string
	var tagFound bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tagValue = a.Value.String()
			tagFound = true
			return false
		}
		return true
	})

	if tagFound {
		if !allowed(tagValue, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: tag '%s'\n", tagValue)
			}
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Filtering for specific tags drops untagged records.
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
