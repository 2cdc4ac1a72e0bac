// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Str("collection", "users").Msg("collection written")

	out := buf.String()
	if !strings.Contains(out, "collection written") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, `"collection":"users"`) {
		t.Errorf("expected structured field in output, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCtx_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithCorrelationID(ctx, "abc12345")

	Ctx(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"correlation_id":"abc12345"`) {
		t.Errorf("expected correlation id in output, got: %s", buf.String())
	}
}

func TestGenerateCorrelationID(t *testing.T) {
	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Errorf("expected 8 character id, got %q", id)
	}
	if id == GenerateCorrelationID() {
		t.Error("expected distinct ids")
	}
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	if id := CorrelationIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	logger := NewSlogLogger().With("service", "gc").WithGroup("run")
	logger.Warn("service restarted", slog.Int("attempt", 2))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"gc"`, `"run.attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, `"run.service"`) {
		t.Errorf("attribute bound before WithGroup must not be grouped, got: %s", out)
	}
}

func TestSlogHandler_AttrsKeepTheirGroups(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	logger := NewSlogLogger().
		WithGroup("tree").
		With("layer", "data").
		WithGroup("svc").
		With("name", "kv-gc")
	logger.Info("started", slog.Int("restarts", 0))

	out := buf.String()
	for _, want := range []string{`"tree.layer":"data"`, `"tree.svc.name":"kv-gc"`, `"tree.svc.restarts":0`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, `"tree.svc.layer"`) {
		t.Errorf("layer was bound under tree only, got: %s", out)
	}
}
