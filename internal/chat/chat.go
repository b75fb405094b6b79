package chat

import "context"

// Role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single provider-neutral chat message.
type Message struct {
	Role    Role
	Content string
}

// UserMessage is a shorthand for a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Usage holds token accounting reported by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the completion returned by a provider. Content may be empty when the
// model produced no text; that is not an error.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Completer is the summarization collaborator.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (*Response, error)
	ModelID() string
}
