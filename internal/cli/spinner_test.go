package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := spinnerOut
	spinnerOut = &buf
	t.Cleanup(func() { spinnerOut = orig })
	return &buf
}

func TestSpinnerBasic(t *testing.T) {
	buf := quietSpinner(t)
	s := newSpinnerWithContext(context.Background(), "Reading catalog...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Reading catalog...") {
		t.Errorf("spinner output = %q, want message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	quietSpinner(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	quietSpinner(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	quietSpinner(t)
	s := newSpinnerWithContext(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessages(t *testing.T) {
	quietSpinner(t)
	out := captureOutput(t)

	s := newSpinnerWithContext(context.Background(), "Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")

	s = newSpinnerWithContext(context.Background(), "Testing error...")
	s.Start()
	s.StopWithError("Failed!")

	got := out.String()
	if !strings.Contains(got, iconSuccess+" Done!") || !strings.Contains(got, iconError+" Failed!") {
		t.Errorf("output = %q", got)
	}
}
