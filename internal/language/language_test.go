package language

import "testing"

func TestSupportedCodes(t *testing.T) {
	want := []string{"bn-IN", "gu-IN", "hi-IN", "kn-IN", "ml-IN", "mr-IN", "or-IN", "pa-IN", "ta-IN", "te-IN"}
	got := Codes()
	if len(got) != len(want) {
		t.Fatalf("Codes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Codes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !IsSupported(Default) {
		t.Fatalf("default %q is not supported", Default)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"hi-IN", "hi-IN", true},
		{"HI-in", "hi-IN", true},
		{"ta", "ta-IN", true},
		{"Malayalam", "ml-IN", true},
		{" odia ", "or-IN", true},
		{"fr-FR", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.in)
		if ok != tc.wantOK || got.Code != tc.want {
			t.Fatalf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.in, got.Code, ok, tc.want, tc.wantOK)
		}
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for _, lang := range GetSupportedLanguages() {
		got, ok := FromLabel(lang.Label())
		if !ok || got.Code != lang.Code {
			t.Fatalf("FromLabel(%q) = (%q, %v)", lang.Label(), got.Code, ok)
		}
	}
}
