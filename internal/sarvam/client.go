package sarvam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/httpclient"
)

const (
	DefaultBaseURL = "https://api.sarvam.ai"
	// DefaultSpeakerGender is required by the API and not user-configurable.
	DefaultSpeakerGender = "Male"
)

// Translator is the translation collaborator used by the pipeline.
type Translator interface {
	Translate(ctx context.Context, req Request) (Response, error)
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Client talks to the Sarvam translate endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ Translator = (*Client)(nil)

// NewClient creates a Sarvam client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperrors.Config("Sarvam API key is missing.", fmt.Errorf("SARVAM_API_KEY is empty"))
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Translate sends one translation request. The body is decoded into both response
// shapes; shape selection happens in ExtractText.
func (c *Client) Translate(ctx context.Context, req Request) (Response, error) {
	client := c.http
	if client == nil {
		client = httpclient.GetDefaultClient()
	}
	body, resp, err := httpclient.PostJSON(ctx, client, c.baseURL+"/translate", map[string]string{
		"api-subscription-key": c.apiKey,
	}, req)
	if err != nil {
		return Response{}, apperrors.New(
			apperrors.KindTransient,
			"Sarvam request failed due to a temporary network/runtime error.",
			fmt.Errorf("sarvam request failed: %w", err),
		)
	}
	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		cause := fmt.Errorf("sarvam status=%s code=%s message=%s", resp.Status, envelope.Error.Code, envelope.Error.Message)
		return Response{}, apperrors.FromStatus("Sarvam", resp.StatusCode, cause)
	}

	out, err := decodeResponse(body)
	if err != nil {
		return Response{}, apperrors.New(
			apperrors.KindValidation,
			"Sarvam response format was invalid.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}
	slog.Debug("Sarvam translation finished", "target", req.TargetLanguageCode, "typed", out.Typed != nil)
	return out, nil
}

func decodeResponse(body []byte) (Response, error) {
	var mapping map[string]any
	if err := json.Unmarshal(body, &mapping); err != nil {
		return Response{}, err
	}
	out := Response{Mapping: mapping}

	var typed struct {
		RequestID          string  `json:"request_id"`
		TranslatedText     *string `json:"translated_text"`
		SourceLanguageCode string  `json:"source_language_code"`
	}
	// Typed decoding fails when translated_text is not a string; the mapping
	// shape still carries whatever the API returned.
	if err := json.Unmarshal(body, &typed); err == nil && typed.TranslatedText != nil {
		out.Typed = &Fields{
			RequestID:          typed.RequestID,
			TranslatedText:     *typed.TranslatedText,
			SourceLanguageCode: typed.SourceLanguageCode,
		}
	}
	return out, nil
}
