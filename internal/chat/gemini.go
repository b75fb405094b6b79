package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/httpclient"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is the alternative summarization backend.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

var _ Completer = (*GeminiClient)(nil)

// NewGemini creates a Gemini client.
func NewGemini(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperrors.Config("Gemini API key is missing.", fmt.Errorf("GEMINI_API_KEY is empty"))
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultGeminiModel
	}
	// option.WithHTTPClient would drop the API key header injection, so the
	// timeout is enforced via context in Complete instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.Config("Gemini client could not be created.", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Close closes the underlying genai client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) ModelID() string {
	return c.modelName
}

func (c *GeminiClient) Complete(ctx context.Context, messages []Message) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, httpclient.DefaultTimeout)
	defer cancel()

	model := c.client.GenerativeModel(c.modelName)
	var parts []genai.Part
	for _, m := range messages {
		if m.Role == RoleSystem {
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(parts) == 0 {
		return nil, apperrors.New(apperrors.KindBadRequest, "No messages to send.", fmt.Errorf("empty message list"))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		// A response without text parts is a degenerate result, not a failure.
		text = ""
	}
	out := &Response{Content: text, Model: c.modelName}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				combined.WriteString(string(text))
			}
		}
		if combined.Len() > 0 {
			return combined.String(), nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}

func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 404:
			return apperrors.New(apperrors.KindBadRequest, "Gemini model not found or no access (404).", wrapped)
		case 400:
			return apperrors.New(apperrors.KindBadRequest, "Gemini request rejected (400).", wrapped)
		default:
			return apperrors.FromStatus("Gemini", gerr.Code, wrapped)
		}
	}
	return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a temporary network/runtime error.", wrapped)
}
