package sign

import (
	"context"
	"sync"
)

var _ Signer = (*MockSigner)(nil)

// MockSigner is a mock implementation of the Signer interface for testing.
// It records every byte slice it is asked to sign and can be primed to fail,
// which lets tests assert both the bytes that reach the signer and that
// invalid builds never reach it at all.
type MockSigner struct {
	mu        sync.Mutex
	publicKey PublicKey
	signed    [][]byte
	err       error
}

// NewMockSigner creates a new MockSigner reporting the given public key.
func NewMockSigner(publicKey PublicKey) *MockSigner {
	return &MockSigner{publicKey: publicKey}
}

// FailWith primes the mock to return err from every subsequent Sign call.
func (m *MockSigner) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Sign records the data and returns a predictable mock signature: the data
// itself prefixed with "mock-sig:".
func (m *MockSigner) Sign(_ context.Context, data []byte) (Signature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.signed = append(m.signed, cp)
	return Signature(append([]byte("mock-sig:"), cp...)), nil
}

// PublicKey returns the mock's public key.
func (m *MockSigner) PublicKey() PublicKey { return m.publicKey }

// SignCalls returns the sign bytes of every Sign call, in order.
func (m *MockSigner) SignCalls() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.signed))
	copy(out, m.signed)
	return out
}
