package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func interactive(input string, out *bytes.Buffer) Prompter {
	return Prompter{
		In:            bytes.NewBufferString(input),
		Out:           out,
		IsInteractive: func() bool { return true },
	}
}

func TestConfirm_NonInteractive(t *testing.T) {
	p := Prompter{In: bytes.NewBufferString("y\n"), IsInteractive: func() bool { return false }}
	ok, err := p.Confirm("Delete key?", false)
	if err == nil {
		t.Fatalf("expected error for non-interactive confirm, got ok=%v", ok)
	}
}

func TestConfirm_Force(t *testing.T) {
	p := Prompter{In: bytes.NewBufferString("n\n")}
	ok, err := p.Confirm("Delete key?", true)
	if err != nil || !ok {
		t.Fatalf("expected forced yes, got ok=%v err=%v", ok, err)
	}
}

func TestConfirm_Interactive(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "y": true}
	for input, want := range cases {
		var out bytes.Buffer
		ok, err := interactive(input, &out).Confirm("Delete key?", false)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
		if ok != want {
			t.Fatalf("input %q: got %v, want %v", input, ok, want)
		}
		if !strings.Contains(out.String(), "Delete key? (y/n): ") {
			t.Fatalf("prompt not printed: %q", out.String())
		}
	}
}

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	got, err := interactive("  What is the capital of France?  \n", &out).ReadLine("Question: ")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if got != "What is the capital of France?" {
		t.Fatalf("got %q", got)
	}
	if out.String() != "Question: " {
		t.Fatalf("label = %q", out.String())
	}

	if _, err := (Prompter{}).ReadLine("Question: "); err == nil {
		t.Fatal("expected error without interactive stdin")
	}
}
