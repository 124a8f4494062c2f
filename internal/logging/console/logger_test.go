package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("shop.admin.servicetext")
	logger = logging.WithFields(logger, map[string]any{"module": "shop.admin.servicetext"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	linkID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("servicetext.link.created",
		"link_id", linkID,
		"position", 2,
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z INFO shop.admin.servicetext servicetext.link.created {"correlation_id":"req-1234","link_id":"8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999","module":"shop.admin.servicetext","position":2}`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("shop.admin.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
	if strings.Contains(lines[0], "ignored.debug") {
		t.Fatalf("unexpected debug log present: %s", lines[0])
	}
}

func TestConsoleLogger_TraceAndFatalLabels(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelTrace
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("shop.admin.productstock")
	logger.Trace("productstock.rows.parsed", 3)
	logger.Fatal("productstock.save.failed", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], " TRACE ") || !strings.Contains(lines[0], `"field_0":3`) {
		t.Fatalf("unexpected trace line: %s", lines[0])
	}
	if !strings.Contains(lines[1], " FATAL ") || !strings.Contains(lines[1], `"error":"boom"`) {
		t.Fatalf("unexpected fatal line: %s", lines[1])
	}
	if console.LevelTrace.String() != "TRACE" || console.LevelWarn.String() != "WARN" {
		t.Fatalf("unexpected level labels %s %s", console.LevelTrace, console.LevelWarn)
	}
}
