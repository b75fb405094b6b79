package language

import (
	"sort"
	"strings"
)

// Language is a supported translation target.
type Language struct {
	Code       string // BCP-47-like region tag accepted by the translation API
	Name       string
	NativeName string
}

// SourceAuto asks the translation API to detect the source language.
const SourceAuto = "auto"

// Default is the target used when none is selected.
const Default = "hi-IN"

// Languages is the fixed set of target languages, keyed by code.
var Languages = map[string]Language{
	"bn-IN": {Code: "bn-IN", Name: "Bengali", NativeName: "বাংলা"},
	"gu-IN": {Code: "gu-IN", Name: "Gujarati", NativeName: "ગુજરાતી"},
	"hi-IN": {Code: "hi-IN", Name: "Hindi", NativeName: "हिन्दी"},
	"kn-IN": {Code: "kn-IN", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	"ml-IN": {Code: "ml-IN", Name: "Malayalam", NativeName: "മലയാളം"},
	"mr-IN": {Code: "mr-IN", Name: "Marathi", NativeName: "मराठी"},
	"or-IN": {Code: "or-IN", Name: "Odia", NativeName: "ଓଡ଼ିଆ"},
	"pa-IN": {Code: "pa-IN", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	"ta-IN": {Code: "ta-IN", Name: "Tamil", NativeName: "தமிழ்"},
	"te-IN": {Code: "te-IN", Name: "Telugu", NativeName: "తెలుగు"},
}

// GetLanguage returns the language for an exact code.
func GetLanguage(code string) (Language, bool) {
	lang, ok := Languages[code]
	return lang, ok
}

// IsSupported reports whether code is one of the fixed target codes.
func IsSupported(code string) bool {
	_, ok := Languages[code]
	return ok
}

// GetSupportedLanguages returns the languages sorted by code.
func GetSupportedLanguages() []Language {
	out := make([]Language, 0, len(Languages))
	for _, v := range Languages {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

// Codes returns the supported codes in display order.
func Codes() []string {
	langs := GetSupportedLanguages()
	codes := make([]string, len(langs))
	for i, l := range langs {
		codes[i] = l.Code
	}
	return codes
}

// Resolve accepts a code in any case ("HI-in"), a bare language subtag ("hi"),
// or an English name ("Hindi") and returns the canonical language.
func Resolve(input string) (Language, bool) {
	needle := strings.TrimSpace(input)
	if needle == "" {
		return Language{}, false
	}
	if lang, ok := Languages[needle]; ok {
		return lang, true
	}
	for _, lang := range Languages {
		if strings.EqualFold(lang.Code, needle) || strings.EqualFold(lang.Name, needle) {
			return lang, true
		}
		if base, _, ok := strings.Cut(lang.Code, "-"); ok && strings.EqualFold(base, needle) {
			return lang, true
		}
	}
	return Language{}, false
}

// Label renders a language for selection controls, e.g. "Hindi (hi-IN)".
func (l Language) Label() string {
	return l.Name + " (" + l.Code + ")"
}

// FromLabel reverses Label.
func FromLabel(label string) (Language, bool) {
	open := strings.LastIndex(label, "(")
	end := strings.LastIndex(label, ")")
	if open < 0 || end <= open {
		return Resolve(label)
	}
	return GetLanguage(label[open+1 : end])
}
