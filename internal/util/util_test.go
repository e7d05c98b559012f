package util

import (
	"context"
	"testing"
	"time"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if logger := NewLogger(level); logger == nil {
			t.Errorf("NewLogger(%q) returned nil", level)
		}
	}
}

func TestPacerFirstCallDoesNotBlock(t *testing.T) {
	p := NewPacer(time.Second)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait blocked for %v", elapsed)
	}
}

func TestPacerEnforcesInterval(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second Wait returned after %v, want >= ~50ms", elapsed)
	}
}

func TestPacerDisabled(t *testing.T) {
	p := NewPacer(0)
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
}

func TestPacerContextCancelled(t *testing.T) {
	p := NewPacer(time.Minute)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Error("Wait should return the context error after cancellation")
	}
}
