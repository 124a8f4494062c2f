package auditcmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/logging"
)

type stubLog struct {
	events     []audit.Event
	listErr    error
	clearErr   error
	listCalls  int
	clearCalls int
}

func (s *stubLog) List(context.Context) ([]audit.Event, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *stubLog) Clear(context.Context) error {
	s.clearCalls++
	return s.clearErr
}

func TestExportHandlerRespectsLimit(t *testing.T) {
	log := &stubLog{
		events: []audit.Event{
			{EntityType: "service", EntityID: "1", Action: audit.ActionServiceTextSaved, OccurredAt: time.Now()},
			{EntityType: "service", EntityID: "2", Action: audit.ActionServiceTextSaved, OccurredAt: time.Now()},
			{EntityType: "product", EntityID: "3", Action: audit.ActionProductStockSaved, OccurredAt: time.Now()},
		},
	}
	handler := NewExportHandler(log, logging.NoOp())
	limit := 2

	if err := handler.Execute(context.Background(), ExportCommand{MaxRecords: &limit}); err != nil {
		t.Fatalf("export execute: %v", err)
	}
	if log.listCalls != 1 {
		t.Fatalf("expected list to be called once, got %d", log.listCalls)
	}
}

func TestExportHandlerFiltersByEntityType(t *testing.T) {
	recorder := audit.NewMemoryRecorder(0)
	_ = recorder.Record(context.Background(), audit.Event{EntityType: "service", EntityID: "1"})
	_ = recorder.Record(context.Background(), audit.Event{EntityType: "product", EntityID: "2"})
	handler := NewExportHandler(recorder, logging.NoOp())

	if err := handler.Execute(context.Background(), ExportCommand{EntityType: "product"}); err != nil {
		t.Fatalf("export execute: %v", err)
	}
	events, _ := recorder.List(context.Background())
	if len(events) != 2 {
		t.Fatalf("expected export to leave the log untouched, got %d events", len(events))
	}
}

func TestExportHandlerRejectsNegativeLimit(t *testing.T) {
	handler := NewExportHandler(&stubLog{}, logging.NoOp())
	limit := -1

	if err := handler.Execute(context.Background(), ExportCommand{MaxRecords: &limit}); err == nil {
		t.Fatal("expected validation error for negative limit")
	}
}

func TestExportHandlerPropagatesError(t *testing.T) {
	log := &stubLog{listErr: errors.New("list failed")}
	handler := NewExportHandler(log, logging.NoOp())

	err := handler.Execute(context.Background(), ExportCommand{})
	if err == nil {
		t.Fatal("expected list error")
	}
	if !errors.Is(err, log.listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestCleanupHandlerDryRun(t *testing.T) {
	log := &stubLog{
		events: []audit.Event{{EntityType: "service", EntityID: "1"}},
	}
	handler := NewCleanupHandler(log, logging.NoOp())

	if err := handler.Execute(context.Background(), CleanupCommand{DryRun: true}); err != nil {
		t.Fatalf("cleanup dry run: %v", err)
	}
	if log.clearCalls != 0 {
		t.Fatalf("expected clear not to be called, got %d", log.clearCalls)
	}
}

func TestCleanupHandlerClearsRecorder(t *testing.T) {
	recorder := audit.NewMemoryRecorder(0)
	_ = recorder.Record(context.Background(), audit.Event{EntityType: "service", EntityID: "1"})
	handler := NewCleanupHandler(recorder, logging.NoOp())

	if err := handler.Execute(context.Background(), CleanupCommand{}); err != nil {
		t.Fatalf("cleanup execute: %v", err)
	}
	events, _ := recorder.List(context.Background())
	if len(events) != 0 {
		t.Fatalf("expected recorder to be empty, got %d events", len(events))
	}
}

func TestCleanupHandlerPropagatesErrors(t *testing.T) {
	listErr := errors.New("list boom")
	log := &stubLog{listErr: listErr}
	handler := NewCleanupHandler(log, logging.NoOp())

	err := handler.Execute(context.Background(), CleanupCommand{})
	if !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}

	log.listErr = nil
	log.clearErr = errors.New("clear boom")

	err = handler.Execute(context.Background(), CleanupCommand{})
	if !errors.Is(err, log.clearErr) {
		t.Fatalf("expected clear error, got %v", err)
	}
}

func TestCleanupHandlerCronOptions(t *testing.T) {
	handler := NewCleanupHandler(&stubLog{}, logging.NoOp(), CleanupWithCronExpression(" @weekly "))

	if got := handler.CronOptions().Expression; got != "@weekly" {
		t.Fatalf("expected cron expression override, got %q", got)
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron handler: %v", err)
	}
	if got := handler.CLIOptions().Path; len(got) != 2 || got[0] != "audit" || got[1] != "cleanup" {
		t.Fatalf("unexpected cli path %v", got)
	}
}
