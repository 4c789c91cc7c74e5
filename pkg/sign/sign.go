package sign

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Signer is an interface for signing canonical sign bytes. Implementations
// may be local key holders or adapters over remote signing services; the
// signing call is the one suspension point in a transaction build, so
// implementations must honor context cancellation when they block.
type Signer interface {
	// Sign generates a signature over the given sign bytes.
	Sign(ctx context.Context, data []byte) (Signature, error)
	// PublicKey returns the public key associated with this signer. It must
	// be stable for the lifetime of one transaction build.
	PublicKey() PublicKey
}

// PublicKey is an interface for an account public key.
type PublicKey interface {
	// Address returns the address derived from this public key.
	Address() Address
	// Bytes returns the raw public key bytes.
	Bytes() []byte
}

// Address is an interface for an account address.
type Address interface {
	fmt.Stringer // All addresses render as lowercase hex.

	// Equals returns true if this address equals the other address.
	Equals(other Address) bool
}

// Signature is a raw cryptographic signature. It renders as lowercase hex at
// every boundary.
type Signature []byte

// String implements the fmt.Stringer interface.
func (s Signature) String() string { return hex.EncodeToString(s) }

// MarshalJSON implements json.Marshaler, encoding the signature as a
// lowercase hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
