package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var questionNumber = regexp.MustCompile(`question number (\d+)`)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
// When the queue is empty it falls back to Fallback, if set.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback produces a reply once the canned queue is drained.
	Fallback func(req Request) string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewDemoProvider returns a MockProvider that answers every request with a
// well-formed placeholder question, for playing without an API key.
func NewDemoProvider() *MockProvider {
	return &MockProvider{Fallback: demoQuestion}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty and no fallback is set.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(m.responses) == 0 {
		if m.Fallback != nil {
			return &Response{Text: m.Fallback(req), Model: "mock", StopReason: "end"}, nil
		}
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func demoQuestion(req Request) string {
	n := 0
	last := ""
	for _, msg := range req.Messages {
		if msg.Role == RoleAssistant {
			n++
		}
		if msg.Role == RoleUser {
			last = msg.Content
		}
	}
	n++
	// The trimmed window undercounts past turns; the prompt's own number does not.
	if m := questionNumber.FindStringSubmatch(last); m != nil {
		if num, err := strconv.Atoi(m[1]); err == nil {
			n = num
		}
	}

	if strings.Contains(last, "True/False") {
		answer := "True"
		if n%2 == 0 {
			answer = "False"
		}
		return fmt.Sprintf("Question: Demo statement %d is %s.\nTrue\nFalse\nCorrect: %s", n, strings.ToLower(answer), answer)
	}
	return fmt.Sprintf("Question: Which option is demo answer %d?\nA) Alpha\nB) Bravo\nC) Charlie\nD) Delta\nCorrect: %c",
		n, 'A'+rune((n-1)%4))
}
