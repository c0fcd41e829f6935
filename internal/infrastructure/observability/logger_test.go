package observability

import (
	"context"
	"errors"
	"testing"
)

func TestLoggerFromContext_NoSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	if logger == nil {
		t.Fatal("expected a logger even without an active span")
	}
}

func TestLoggerFromContext_WithSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.operation")
	defer span.End()

	logger := LoggerFromContext(ctx)
	if logger == nil {
		t.Fatal("expected a logger for a span-carrying context")
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("expected the global logger")
	}
}

func TestRecordError_NilSafe(t *testing.T) {
	_, span := StartSpan(context.Background(), "test.operation")
	defer span.End()

	RecordError(span, nil)
	RecordError(span, errors.New("upstream down"))
}
