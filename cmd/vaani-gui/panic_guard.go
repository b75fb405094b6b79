package main

import (
	"fmt"
	"runtime/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/vaani/internal/logger"
)

const panicNotice = "Something went wrong while answering and the run was stopped. " +
	"Your question and keys are unchanged. Ask again, or restart vaani if it keeps happening."

// withPanicGuard runs fn and turns a panic into a log entry plus an optional
// onPanic callback. The stack is logged at debug level only.
func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Error("GUI panic recovered", "scope", scope, "panic", fmt.Sprint(r))
		logger.Debug("GUI panic stack", "scope", scope, "stack", string(debug.Stack()))
		if onPanic != nil {
			onPanic(r)
		}
	}()
	fn()
}

// safeGo runs fn on a new goroutine.
func safeGo(scope string, fn func()) {
	go withPanicGuard(scope, nil, fn)
}

// safeDo hands fn to the fyne UI goroutine.
func safeDo(scope string, fn func()) {
	dispatchGuarded(scope, nil, fn)
}

func dispatchGuarded(scope string, onPanic func(string) func(any), fn func()) {
	handler := func(s string) func(any) {
		if onPanic == nil {
			return nil
		}
		return onPanic(s)
	}
	withPanicGuard(scope+".dispatch", handler(scope+".dispatch"), func() {
		fyne.Do(func() { withPanicGuard(scope, handler(scope), fn) })
	})
}

// safeGo is the app-aware variant: a panic also stops the current run and
// tells the user once.
func (a *vaaniApp) safeGo(scope string, fn func()) {
	if a == nil {
		safeGo(scope, fn)
		return
	}
	go withPanicGuard(scope, a.onPanic(scope), fn)
}

func (a *vaaniApp) safeDo(scope string, fn func()) {
	if a == nil {
		safeDo(scope, fn)
		return
	}
	dispatchGuarded(scope, a.onPanic, fn)
}

func (a *vaaniApp) onPanic(scope string) func(any) {
	return func(r any) { a.handleRecoveredPanic(scope, r) }
}

func (a *vaaniApp) handleRecoveredPanic(scope string, _ any) {
	if a == nil || fyne.CurrentApp() == nil {
		return
	}
	a.cancelActive("recovered panic in " + scope)
	a.setState(StateFailure)

	a.panicNoticeOnce.Do(func() {
		a.safeDo("ui.panic_notice", func() {
			if a.window != nil {
				dialog.ShowInformation("vaani stopped this run", panicNotice, a.window)
			}
		})
	})
}
