package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/httpclient"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "gemma2-9b-it"
)

// GroqClient talks to any OpenAI-compatible chat completions endpoint; Groq by default.
type GroqClient struct {
	client openai.Client
	model  string
}

var _ Completer = (*GroqClient)(nil)

// NewGroq creates a chat client. Empty model/baseURL use the Groq defaults.
func NewGroq(apiKey, model, baseURL string) (*GroqClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperrors.Config("Groq API key is missing.", fmt.Errorf("GROQ_API_KEY is empty"))
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGroqModel
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGroqBaseURL
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpclient.GetDefaultClient()),
		// One attempt per run; failures are reported, not retried.
		option.WithMaxRetries(0),
	)
	return &GroqClient{client: client, model: model}, nil
}

// ModelID returns the configured model identifier.
func (c *GroqClient) ModelID() string {
	return c.model
}

func (c *GroqClient) Complete(ctx context.Context, messages []Message) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}
	if len(params.Messages) == 0 {
		return nil, apperrors.New(apperrors.KindBadRequest, "No messages to send.", fmt.Errorf("empty message list"))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	out := &Response{
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	slog.Debug("Chat completion finished", "model", out.Model, "usage_total", out.Usage.TotalTokens)
	return out, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.New(apperrors.KindTransient, "Summarization request was canceled or timed out.", err)
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return apperrors.New(
			apperrors.KindTransient,
			"Chat completion request failed due to a temporary network/runtime error.",
			fmt.Errorf("chat completion failed: %w", err),
		)
	}
	cause := fmt.Errorf("chat completion status=%d code=%s: %w", apiErr.StatusCode, apiErr.Code, err)
	if apiErr.StatusCode == 404 || strings.EqualFold(apiErr.Code, "model_not_found") {
		return apperrors.New(apperrors.KindBadRequest, "The model does not exist or you do not have access to it.", cause)
	}
	return apperrors.FromStatus("Chat completion", apiErr.StatusCode, cause)
}
