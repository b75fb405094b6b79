package main

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWithPanicGuardRecovers(t *testing.T) {
	var called atomic.Bool
	withPanicGuard("ask.pipeline", func(any) {
		called.Store(true)
	}, func() {
		panic("boom")
	})
	if !called.Load() {
		t.Fatalf("panic callback was not called")
	}
}

func TestWithPanicGuardNoPanic(t *testing.T) {
	var called atomic.Bool
	withPanicGuard("ask.status", func(any) {
		called.Store(true)
	}, func() {})
	if called.Load() {
		t.Fatalf("panic callback should not be called")
	}
}

func TestSafeGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	safeGo("ask.pipeline", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("safeGo goroutine did not finish")
	}
}

func TestNilAppSafeGoFallsBack(t *testing.T) {
	var a *vaaniApp
	done := make(chan struct{})
	a.safeGo("ask.report", func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("safeGo goroutine did not run")
	}
}

func TestAppOnPanicNilAppIsNoop(t *testing.T) {
	var a *vaaniApp
	var called atomic.Bool
	withPanicGuard("ask.pipeline", func(r any) {
		called.Store(true)
		a.handleRecoveredPanic("ask.pipeline", r)
	}, func() {
		panic("boom")
	})
	if !called.Load() {
		t.Fatal("callback not reached")
	}
}
