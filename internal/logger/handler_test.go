package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg *Config) (*filteringHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	cfg.process()
	return newFilteringHandler(base, cfg), &buf
}

func record(msg string, pc uintptr, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, pc)
	r.AddAttrs(attrs...)
	return r
}

func herePC() uintptr {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	return pcs[0]
}

func TestFilteringTags(t *testing.T) {
	h, buf := newTestHandler(&Config{DisabledTags: []string{"Noisy"}})

	_ = h.Handle(context.Background(), record("dropped", 0, slog.String(tagKey, "noisy")))
	_ = h.Handle(context.Background(), record("kept", 0, slog.String(tagKey, "config")))
	_ = h.Handle(context.Background(), record("untagged", 0))

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("expected disabled tag to be filtered: %s", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "untagged") {
		t.Errorf("expected other records to pass: %s", out)
	}
}

func TestFilteringEnabledTagsDropUntagged(t *testing.T) {
	h, buf := newTestHandler(&Config{EnabledTags: []string{"watch"}})

	_ = h.Handle(context.Background(), record("untagged", 0))
	_ = h.Handle(context.Background(), record("watched", 0, slog.String(tagKey, "watch")))

	out := buf.String()
	if strings.Contains(out, "untagged") || !strings.Contains(out, "watched") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFilteringPackagesAndFiles(t *testing.T) {
	pc := herePC()

	h, buf := newTestHandler(&Config{DisabledPackages: []string{"logger"}})
	_ = h.Handle(context.Background(), record("from logger pkg", pc))
	if buf.Len() != 0 {
		t.Errorf("expected package filter to drop record: %s", buf.String())
	}

	h, buf = newTestHandler(&Config{EnabledFiles: []string{"other.go"}})
	_ = h.Handle(context.Background(), record("from test file", pc))
	if buf.Len() != 0 {
		t.Errorf("expected file allow-list to drop record: %s", buf.String())
	}

	h, buf = newTestHandler(&Config{EnabledFiles: []string{"handler_test.go"}})
	_ = h.Handle(context.Background(), record("allowed file", pc))
	if !strings.Contains(buf.String(), "allowed file") {
		t.Errorf("expected allowed file to pass: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, known := ParseLevel(tt.in)
		if got != tt.want || known != tt.known {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, known, tt.want, tt.known)
		}
	}
}
