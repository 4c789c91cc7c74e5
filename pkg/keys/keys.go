// Package keys derives public keys and account addresses from raw key
// material. It performs no elliptic-curve computation: the expanded-secret-key
// convention bundles the public key into the private key material, and
// addresses are a one-way digest of the public key.
package keys

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// PrivateKeyMaterialSize is the size of expanded private key material:
	// seed(32) || publicKey(32).
	PrivateKeyMaterialSize = 64
	// PublicKeySize is the size of a raw public key.
	PublicKeySize = 32
	// AddressSize is the size of an account address.
	AddressSize = 20
)

// ErrInvalidKeyLength is returned when key material of the wrong length is
// supplied. Derivation never attempts a best-effort result from wrong-length
// input.
var ErrInvalidKeyLength = errors.New("invalid key length")

// PublicKey is a raw 32-byte public key.
type PublicKey []byte

// String renders the public key as lowercase hex, the boundary representation.
func (p PublicKey) String() string { return hex.EncodeToString(p) }

// Address is a raw 20-byte account address.
type Address []byte

// String renders the address as lowercase hex, the boundary representation.
func (a Address) String() string { return hex.EncodeToString(a) }

// Equals returns true if both addresses carry identical bytes.
func (a Address) Equals(other Address) bool { return bytes.Equal(a, other) }

// AddressHasher is the digest step of address derivation. The concrete
// algorithm is protocol-mandated and must match the target chain's reference
// implementation exactly; it sits behind this interface so a divergent chain
// can substitute its own digest without touching derivation.
type AddressHasher interface {
	// Sum returns the digest of the raw public key bytes. The digest must be
	// at least AddressSize bytes long.
	Sum(pub []byte) []byte
}

// SHA256Hasher is the default AddressHasher: a plain SHA-256 digest over the
// raw public key bytes.
type SHA256Hasher struct{}

// Sum implements AddressHasher.
func (SHA256Hasher) Sum(pub []byte) []byte {
	sum := sha256.Sum256(pub)
	return sum[:]
}

// DerivePublicKey extracts the public key from 64 bytes of expanded private
// key material. It returns bytes [32,64) unchanged; it does not derive a
// public key from a raw 32-byte seed.
func DerivePublicKey(material []byte) (PublicKey, error) {
	if len(material) != PrivateKeyMaterialSize {
		return nil, fmt.Errorf("%w: private key material must be %d bytes, got %d",
			ErrInvalidKeyLength, PrivateKeyMaterialSize, len(material))
	}
	pub := make(PublicKey, PublicKeySize)
	copy(pub, material[PublicKeySize:])
	return pub, nil
}

// DeriveAddress derives the account address from a raw 32-byte public key
// using the default protocol digest.
func DeriveAddress(pub []byte) (Address, error) {
	return DeriveAddressWith(SHA256Hasher{}, pub)
}

// DeriveAddressWith derives the account address using the given hasher:
// the digest of the public key truncated to its first 20 bytes.
func DeriveAddressWith(hasher AddressHasher, pub []byte) (Address, error) {
	if len(pub) != PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			ErrInvalidKeyLength, PublicKeySize, len(pub))
	}
	digest := hasher.Sum(pub)
	addr := make(Address, AddressSize)
	copy(addr, digest[:AddressSize])
	return addr, nil
}

// PublicKeyFromHex decodes a lowercase-hex public key from the boundary
// representation.
func PublicKeyFromHex(s string) (PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(raw) != PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			ErrInvalidKeyLength, PublicKeySize, len(raw))
	}
	return PublicKey(raw), nil
}

// AddressFromHex decodes a lowercase-hex address from the boundary
// representation.
func AddressFromHex(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address hex: %w", err)
	}
	if len(raw) != AddressSize {
		return nil, fmt.Errorf("%w: address must be %d bytes, got %d",
			ErrInvalidKeyLength, AddressSize, len(raw))
	}
	return Address(raw), nil
}
