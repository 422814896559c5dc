package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"strmctl/internal/logging"
)

func TestTeeHandlerRespectsPerHandlerLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(logging.TeeHandler(infoHandler, nil, debugHandler))
	logger.Debug("probe sent")
	logger.With(logging.String(logging.FieldComponent, "panel")).Info("scene created")

	if strings.Contains(infoBuf.String(), "probe sent") {
		t.Fatalf("info sink received debug line: %q", infoBuf.String())
	}
	for _, want := range []string{"probe sent", "scene created", "component=panel"} {
		if !strings.Contains(debugBuf.String(), want) {
			t.Fatalf("expected %q in debug sink %q", want, debugBuf.String())
		}
	}
	if !strings.Contains(infoBuf.String(), "component=panel") {
		t.Fatalf("attrs must reach every sink: %q", infoBuf.String())
	}
}

func TestTeeHandlerWithoutHandlersDiscards(t *testing.T) {
	handler := logging.TeeHandler()
	if handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected empty tee to be disabled")
	}
}
