// Package transaction defines the closed set of on-chain message variants.
//
// Each variant is an immutable value object that knows how to validate its
// own fields and render itself for both encoding schemes: the amino-style
// {type, value} JSON pair consumed by the legacy codec and the protobuf wire
// payload consumed by the newer codec. Adding a new on-chain message type
// means adding a new variant here and a dispatch entry in pkg/codec, not
// modifying existing variants.
package transaction

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingField is returned when a required message field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidAmount is returned when an amount is not a positive integer
	// decimal string.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidField is returned when a field is present but malformed,
	// e.g. an address that is not 20 bytes of hex.
	ErrInvalidField = errors.New("invalid field")
)

// Msg is the interface implemented by every transaction message variant.
// A variant never changes its discriminant after construction.
type Msg interface {
	// Validate fails fast on absent required fields or malformed values,
	// before any signing round-trip is attempted.
	Validate() error
	// LegacyType returns the amino route discriminant, e.g. "pos/Send".
	LegacyType() string
	// LegacyValue returns the JSON-shaped value object paired with
	// LegacyType in the legacy sign document.
	LegacyValue() any
	// ProtoTypeURL returns the Any type URL discriminant for the proto
	// scheme, e.g. "/x.nodes.MsgSend".
	ProtoTypeURL() string
	// ProtoBytes renders the protobuf wire payload for the proto scheme.
	ProtoBytes() ([]byte, error)
}

// SenderDefaulter is implemented by variants whose sender-like field may be
// left unset and filled with the signer's own address. The builder resolves
// the default once per build from the live signer, never caching it.
type SenderDefaulter interface {
	// WithDefaultSender returns a copy with the sender field set to addr if
	// it was unset, or the receiver unchanged otherwise.
	WithDefaultSender(addr string) Msg
}

var structValidator = validator.New()

// validateStruct runs the variant's validate tags and maps the first failure
// onto the package error taxonomy.
func validateStruct(m any) error {
	err := structValidator.Struct(m)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", ErrMissingField, first.Field())
	default:
		return fmt.Errorf("%w: %s", ErrInvalidField, first.Field())
	}
}

// validateAmount checks that s is a strictly positive integer decimal string.
// Token amounts are denominated in the chain's smallest unit, so fractional
// values are as invalid as negative ones.
func validateAmount(field, s string) error {
	if s == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %s is not a numeric string", ErrInvalidAmount, field)
	}
	if !d.IsInteger() {
		return fmt.Errorf("%w: %s must be an integer amount", ErrInvalidAmount, field)
	}
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, field)
	}
	return nil
}

// requireField fails with ErrMissingField when a field the validate tags
// treat as optional (because it is defaultable at build time) is still unset
// at validation time.
func requireField(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

// addressBytes decodes a 40-char hex address field into raw bytes.
func addressBytes(field, s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 20 {
		return nil, fmt.Errorf("%w: %s is not a 20-byte hex address", ErrInvalidField, field)
	}
	return raw, nil
}

// publicKeyBytes decodes a 64-char hex public key field into raw bytes.
func publicKeyBytes(field, s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("%w: %s is not a 32-byte hex public key", ErrInvalidField, field)
	}
	return raw, nil
}

// legacyPublicKey is the amino rendering of an ed25519 public key.
type legacyPublicKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

const legacyEd25519KeyType = "crypto/ed25519_public_key"

func newLegacyPublicKey(hexKey string) legacyPublicKey {
	return legacyPublicKey{Type: legacyEd25519KeyType, Value: hexKey}
}
