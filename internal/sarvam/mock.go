package sarvam

import "context"

// MockTranslator returns a canned response and records requests.
type MockTranslator struct {
	Response Response
	Error    error
	Requests []Request
}

func (m *MockTranslator) Translate(_ context.Context, req Request) (Response, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.Error
}
