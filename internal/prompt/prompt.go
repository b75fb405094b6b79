package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter reads short answers from an interactive terminal.
type Prompter struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func Default() Prompter {
	return Prompter{
		In:  os.Stdin,
		Out: os.Stderr,
		IsInteractive: func() bool {
			info, err := os.Stdin.Stat()
			if err != nil {
				return false
			}
			return (info.Mode() & os.ModeCharDevice) != 0
		},
	}
}

// Interactive reports whether stdin is a terminal.
func (p Prompter) Interactive() bool {
	return p.IsInteractive != nil && p.IsInteractive()
}

// ReadLine prints label and returns the trimmed line typed by the user.
func (p Prompter) ReadLine(label string) (string, error) {
	if !p.Interactive() {
		return "", fmt.Errorf("non-interactive stdin: pass the value as an argument")
	}
	if p.Out != nil {
		fmt.Fprint(p.Out, label)
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. force skips the prompt and answers yes.
func (p Prompter) Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !p.Interactive() {
		return false, fmt.Errorf("non-interactive stdin: use --yes to confirm")
	}
	answer, err := p.ReadLine(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
