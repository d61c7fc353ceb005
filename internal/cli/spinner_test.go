package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Loading jazz...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Loading jazz...") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q should end by clearing the line", out)
	}
	if s.Interrupted() {
		t.Error("Stop() should not count as an interruption")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &buf, "Saving...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Interrupted() {
		t.Error("Interrupted() = false after the context was cancelled")
	}

	n := buf.Len()
	time.Sleep(2 * spinnerInterval)
	if buf.Len() != n {
		t.Error("spinner wrote after Stop()")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "x")
	s.Start()
	s.Stop()
	s.Stop()

	// Never started.
	newSpinnerTo(context.Background(), &bytes.Buffer{}, "y").Stop()
}

func TestWithSpinnerReturnsResult(t *testing.T) {
	got, err := withSpinner(context.Background(), "Counting...", func() (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("withSpinner() = %d, %v", got, err)
	}
}
