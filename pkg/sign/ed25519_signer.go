package sign

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/poktfn/pocket-go/pkg/keys"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*Ed25519Signer)(nil)
var _ PublicKey = (*Ed25519PublicKey)(nil)
var _ Address = (*AccountAddress)(nil)

// AccountAddress implements the Address interface over a raw 20-byte address.
type AccountAddress struct{ addr keys.Address }

// NewAccountAddress creates a new AccountAddress from raw address bytes.
func NewAccountAddress(addr keys.Address) AccountAddress {
	return AccountAddress{addr: addr}
}

// NewAccountAddressFromHex creates a new AccountAddress from a lowercase hex
// string.
func NewAccountAddressFromHex(hexAddr string) (AccountAddress, error) {
	addr, err := keys.AddressFromHex(hexAddr)
	if err != nil {
		return AccountAddress{}, err
	}
	return AccountAddress{addr: addr}, nil
}

func (a AccountAddress) String() string { return a.addr.String() }

// Equals returns true if this address equals the other address.
func (a AccountAddress) Equals(other Address) bool {
	if otherAddr, ok := other.(AccountAddress); ok {
		return a.addr.Equals(otherAddr.addr)
	}
	// Fallback to string comparison for foreign Address implementations.
	return a.String() == other.String()
}

// Ed25519PublicKey implements the PublicKey interface for ed25519 keys.
type Ed25519PublicKey struct{ pub keys.PublicKey }

// NewEd25519PublicKey creates a new Ed25519PublicKey from raw public key bytes.
func NewEd25519PublicKey(pub []byte) (Ed25519PublicKey, error) {
	if len(pub) != keys.PublicKeySize {
		return Ed25519PublicKey{}, fmt.Errorf("%w: public key must be %d bytes, got %d",
			keys.ErrInvalidKeyLength, keys.PublicKeySize, len(pub))
	}
	cp := make(keys.PublicKey, keys.PublicKeySize)
	copy(cp, pub)
	return Ed25519PublicKey{pub: cp}, nil
}

// Address returns the address derived from this public key.
func (p Ed25519PublicKey) Address() Address {
	addr, err := keys.DeriveAddress(p.pub)
	if err != nil {
		// Construction guarantees a 32-byte key; derivation cannot fail.
		panic(fmt.Sprintf("address derivation from validated key: %v", err))
	}
	return AccountAddress{addr: addr}
}

// Bytes returns the raw public key bytes.
func (p Ed25519PublicKey) Bytes() []byte { return p.pub }

// Ed25519Signer is the in-process implementation of the Signer interface,
// holding a full ed25519 private key.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	publicKey  Ed25519PublicKey
}

// NewEd25519Signer creates a signer from 64 bytes of expanded private key
// material (seed || publicKey). The embedded public key half must match the
// key the seed expands to; mismatched material would otherwise sign with an
// identity different from the one it reports.
func NewEd25519Signer(material []byte) (*Ed25519Signer, error) {
	pub, err := keys.DerivePublicKey(material)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(material[:ed25519.SeedSize])
	if !bytes.Equal(priv[ed25519.SeedSize:], pub) {
		return nil, fmt.Errorf("private key material is inconsistent: embedded public key does not match seed")
	}
	publicKey, err := NewEd25519PublicKey(pub)
	if err != nil {
		return nil, err
	}
	return &Ed25519Signer{privateKey: priv, publicKey: publicKey}, nil
}

// NewEd25519SignerFromHex creates a signer from hex-encoded private key
// material.
func NewEd25519SignerFromHex(materialHex string) (*Ed25519Signer, error) {
	material, err := hex.DecodeString(materialHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse private key hex: %w", err)
	}
	return NewEd25519Signer(material)
}

// Sign generates an ed25519 signature over the given sign bytes.
func (s *Ed25519Signer) Sign(ctx context.Context, data []byte) (Signature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Signature(ed25519.Sign(s.privateKey, data)), nil
}

// PublicKey returns the public key associated with this signer.
func (s *Ed25519Signer) PublicKey() PublicKey { return s.publicKey }
