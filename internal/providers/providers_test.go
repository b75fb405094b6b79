package providers

import (
	"math"
	"reflect"
	"testing"
)

func TestPricing_Default(t *testing.T) {
	m, ok := Pricing(Groq, "unknown-model")
	if ok {
		t.Fatalf("expected default pricing for unknown model")
	}
	if m.InputPerMillion != DefaultInputPerMillion || m.OutputPerMillion != DefaultOutputPerMillion {
		t.Fatalf("unexpected default pricing: %+v", m)
	}
	if _, ok := Pricing("nope", "gemma2-9b-it"); ok {
		t.Fatalf("unknown provider must not match a model")
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel(Groq); got != "gemma2-9b-it" {
		t.Fatalf("DefaultModel(groq) = %q", got)
	}
	if got := DefaultModel(Gemini); got != "gemini-2.0-flash" {
		t.Fatalf("DefaultModel(gemini) = %q", got)
	}
	if got := DefaultModel("other"); got != "" {
		t.Fatalf("DefaultModel(other) = %q", got)
	}
}

func TestNames(t *testing.T) {
	if got := Names(); !reflect.DeepEqual(got, []string{Gemini, Groq}) {
		t.Fatalf("Names() = %v", got)
	}
	if !IsKnown(Groq) || IsKnown("openai") {
		t.Fatal("unexpected IsKnown result")
	}
}

func TestEstimateCost(t *testing.T) {
	got := EstimateCost(Groq, "gemma2-9b-it", 1_000_000, 500_000, 1)
	want := 0.20 + 0.10 + SearchCostPerCall
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("EstimateCost = %f, want %f", got, want)
	}
}

func TestProviderOf(t *testing.T) {
	tests := []struct {
		model string
		want  string
		ok    bool
	}{
		{"gemma2-9b-it", Groq, true},
		{"gemini-2.5-flash", Gemini, true},
		{"my-finetune", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ProviderOf(tt.model)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ProviderOf(%q) = (%q, %v), want (%q, %v)", tt.model, got, ok, tt.want, tt.ok)
		}
	}
}
