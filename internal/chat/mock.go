package chat

import "context"

// MockCompleter returns a canned response and records calls.
type MockCompleter struct {
	Response *Response
	Error    error
	Calls    [][]Message
}

func (m *MockCompleter) Complete(_ context.Context, messages []Message) (*Response, error) {
	m.Calls = append(m.Calls, messages)
	return m.Response, m.Error
}

func (m *MockCompleter) ModelID() string { return "mock" }
