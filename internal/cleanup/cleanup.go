// Package cleanup collects shutdown work (closing log files, wiping session
// state) so entry points can run it once on the way out.
package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

// Stack runs named hooks in reverse registration order. The zero value is ready.
type Stack struct {
	mu    sync.Mutex
	names []string
	fns   []func() error
}

// Push adds a hook. Nil functions are ignored.
func (s *Stack) Push(name string, fn func() error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	s.fns = append(s.fns, fn)
}

// Run drains the stack. A hook runs at most once even if Run is called again.
func (s *Stack) Run() error {
	s.mu.Lock()
	names, fns := s.names, s.fns
	s.names, s.fns = nil, nil
	s.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", names[i], err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	return nil
}

var process Stack

// Register adds a hook to the process-wide stack.
func Register(name string, fn func() error) { process.Push(name, fn) }

// RunAll drains the process-wide stack.
func RunAll() error { return process.Run() }
