package ai

import "context"

// Mock is a scriptable Client for tests and local runs without an API key.
// Responses are consumed in order; once exhausted the last one repeats.
type Mock struct {
	Responses []MockResponse
	Calls     []string // user prompts, in call order
	i         int
}

type MockResponse struct {
	Content string
	Err     error
}

func NewMock(responses ...MockResponse) *Mock {
	return &Mock{Responses: responses}
}

func (m *Mock) next(user string) (string, error) {
	m.Calls = append(m.Calls, user)
	if len(m.Responses) == 0 {
		return "", nil
	}
	r := m.Responses[m.i]
	if m.i < len(m.Responses)-1 {
		m.i++
	}
	return r.Content, r.Err
}

func (m *Mock) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return m.next(user)
}

func (m *Mock) GenerateText(ctx context.Context, system, user string) (string, error) {
	return m.next(user)
}

func (m *Mock) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return m.next(prompt)
}
