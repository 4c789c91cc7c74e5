package provider

import (
	"context"
	"sync"
)

var _ Provider = (*MockProvider)(nil)

// MockProvider is a mock implementation of the Provider interface for
// testing. It records every raw transaction it is asked to broadcast and can
// be primed to fail.
type MockProvider struct {
	mu       sync.Mutex
	sent     []*RawTransaction
	response *TxResponse
	err      error
}

// NewMockProvider creates a MockProvider answering every broadcast with the
// given response.
func NewMockProvider(response *TxResponse) *MockProvider {
	return &MockProvider{response: response}
}

// FailWith primes the mock to return err from every subsequent call.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SendTransaction implements Provider.
func (m *MockProvider) SendTransaction(_ context.Context, raw *RawTransaction) (*TxResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, raw)
	return m.response, nil
}

// Sent returns the raw transactions broadcast so far, in order.
func (m *MockProvider) Sent() []*RawTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*RawTransaction, len(m.sent))
	copy(out, m.sent)
	return out
}
