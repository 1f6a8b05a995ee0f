package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stderr
	stderr = &syncWriter{w: &buf}
	t.Cleanup(func() { stderr = old })
	return &buf
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	buf := captureStderr(t)

	s := newSpinner(context.Background(), "Converting to PNG...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Converting to PNG...") {
		t.Errorf("spinner output %q should contain its message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	captureStderr(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Waiting...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureStderr(t)
	s := newSpinner(context.Background(), "Testing...")
	s.Start()
	s.Stop()
	s.Stop()
}
