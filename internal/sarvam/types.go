package sarvam

import "strings"

// TranslatedTextKey is the field carrying the translation in either response shape.
const TranslatedTextKey = "translated_text"

// Request is the full input sent to the translate endpoint.
type Request struct {
	Input              string `json:"input"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
	SpeakerGender      string `json:"speaker_gender"`
}

// Fields is the attribute-style response shape.
type Fields struct {
	RequestID          string `json:"request_id,omitempty"`
	TranslatedText     string `json:"translated_text"`
	SourceLanguageCode string `json:"source_language_code,omitempty"`
}

// Response is a variant over the two shapes the translation API may return:
// a typed record (Typed) or a plain key/value mapping (Mapping). Either may be nil.
type Response struct {
	Typed   *Fields
	Mapping map[string]any
}

// TypedResponse builds a response exposing only the attribute-style shape.
func TypedResponse(text string) Response {
	return Response{Typed: &Fields{TranslatedText: text}}
}

// MappingResponse builds a response exposing only the mapping shape.
func MappingResponse(m map[string]any) Response {
	return Response{Mapping: m}
}

// ExtractText returns the translated text. The typed shape wins when it carries
// non-blank text; otherwise the mapping key is consulted. ok is false when neither
// shape yields text, which callers treat as an empty translation.
func ExtractText(r Response) (text string, ok bool) {
	if r.Typed != nil && strings.TrimSpace(r.Typed.TranslatedText) != "" {
		return r.Typed.TranslatedText, true
	}
	if r.Mapping != nil {
		if v, found := r.Mapping[TranslatedTextKey]; found {
			if s, isString := v.(string); isString && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}
