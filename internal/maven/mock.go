package maven

import (
	"context"
	"sync"
)

// MockInvoker implements Invoker for testing. It records every request.
type MockInvoker struct {
	mu       sync.Mutex
	requests []Request

	// Errors maps a project name to the error its invocations return.
	Errors map[string]error

	// OnRun is called for every request after it is recorded.
	OnRun func(ctx context.Context, req Request) error
}

var _ Invoker = (*MockInvoker)(nil)

// NewMockInvoker creates a new MockInvoker
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{Errors: make(map[string]error)}
}

func (m *MockInvoker) Run(ctx context.Context, req Request) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	err := m.Errors[req.Project]
	hook := m.OnRun
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		return hook(ctx, req)
	}
	return nil
}

// Requests returns the recorded requests in call order.
func (m *MockInvoker) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
