package search

import "context"

// MockSearcher returns canned results and records queries.
type MockSearcher struct {
	Results []Result
	Error   error
	Queries []string
	Limits  []int
}

func (m *MockSearcher) Search(_ context.Context, query string, maxResults int) ([]Result, error) {
	m.Queries = append(m.Queries, query)
	m.Limits = append(m.Limits, maxResults)
	return m.Results, m.Error
}

// ContentResult is a shorthand for a result carrying content.
func ContentResult(content string) Result {
	return Result{Content: content, HasContent: true}
}
