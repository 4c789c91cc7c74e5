// Package codec renders sign documents and final transactions into the exact
// byte sequences the validator network recomputes and verifies.
//
// The concrete encoding strategy is selected per chain generation: legacy
// chains sign and broadcast the canonical JSON forms, newer chains sign a
// deterministic protobuf serialization and broadcast a protobuf transaction.
// Each strategy's byte layout lives in its own file (legacy.go, proto.go) so
// it can be audited against the protocol spec in isolation.
package codec

import (
	"errors"
	"fmt"

	"github.com/poktfn/pocket-go/pkg/transaction"
)

var (
	// ErrInvalidChainID is returned for chain identifiers outside the
	// supported enumeration.
	ErrInvalidChainID = errors.New("invalid chain id")
	// ErrUnsupportedMessage is returned when a message variant is not a
	// valid encoding under the active chain scheme. The build fails before
	// any signer round-trip rather than silently mis-encoding.
	ErrUnsupportedMessage = errors.New("unsupported message for chain scheme")
	// ErrInvalidEntropy is returned when the entropy nonce is not a
	// non-negative decimal integer.
	ErrInvalidEntropy = errors.New("invalid entropy")
)

// ChainID identifies a target network.
type ChainID string

// Supported chain identifiers.
const (
	ChainMainnet  ChainID = "mainnet"
	ChainTestnet  ChainID = "testnet"
	ChainLocalnet ChainID = "localnet"
)

// ParseChainID validates s against the supported enumeration.
func ParseChainID(s string) (ChainID, error) {
	switch ChainID(s) {
	case ChainMainnet, ChainTestnet, ChainLocalnet:
		return ChainID(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChainID, s)
	}
}

// Scheme names an encoding strategy generation.
type Scheme string

const (
	// SchemeLegacy signs and broadcasts canonical JSON.
	SchemeLegacy Scheme = "legacy"
	// SchemeProto signs and broadcasts deterministic protobuf.
	SchemeProto Scheme = "proto"
)

// FeatureGrantKey gates the feature-grant form of governance upgrades.
// Chains without this feature active reject such messages.
const FeatureGrantKey = "FEATURE"

// ChainParams describes the encoding behavior of one chain generation.
type ChainParams struct {
	// Scheme selects the byte-layout strategy.
	Scheme Scheme `yaml:"scheme"`
	// Features lists the active protocol feature keys.
	Features []string `yaml:"features"`
}

// FeatureActive reports whether the named feature key is active.
func (p ChainParams) FeatureActive(key string) bool {
	for _, f := range p.Features {
		if f == key {
			return true
		}
	}
	return false
}

// defaultChainParams is the built-in scheme table. LoadChainTable can
// override it from a chains.yaml file.
var defaultChainParams = map[ChainID]ChainParams{
	ChainMainnet:  {Scheme: SchemeProto, Features: []string{FeatureGrantKey}},
	ChainTestnet:  {Scheme: SchemeProto, Features: []string{FeatureGrantKey}},
	ChainLocalnet: {Scheme: SchemeLegacy},
}

// ParamsFor returns the built-in ChainParams for the given chain.
func ParamsFor(chainID ChainID) (ChainParams, error) {
	params, ok := defaultChainParams[chainID]
	if !ok {
		return ChainParams{}, fmt.Errorf("%w: %q", ErrInvalidChainID, chainID)
	}
	return params, nil
}

// Coin is a fee amount in a single denomination. Amounts are decimal strings
// in the chain's smallest unit.
type Coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// SignDoc is the logical, not-yet-serialized structure whose canonical bytes
// the signer signs. It exists transiently per transaction build.
type SignDoc struct {
	ChainID string
	Entropy string // decimal-string nonce, unique per build attempt
	Fee     Coin
	Memo    string
	Msg     transaction.Msg
}

// TxSignature pairs the signer's public key with the signature it produced
// over the sign bytes.
type TxSignature struct {
	PublicKey []byte
	Signature []byte
}

// Encoder renders one sign document. Instances are call-local and never
// reused across builds.
type Encoder interface {
	// SignBytes renders the canonical sign document bytes. The output must
	// byte-for-byte match what the validating network recomputes.
	SignBytes() ([]byte, error)
	// FinalBytes wraps the message, fee, memo and signature into the final
	// on-wire transaction encoding.
	FinalBytes(sig TxSignature) ([]byte, error)
}

// NewEncoder selects the encoding strategy for the given chain from the
// built-in scheme table and validates that the document's message is a legal
// encoding under it.
func NewEncoder(chainID ChainID, doc SignDoc) (Encoder, error) {
	params, err := ParamsFor(chainID)
	if err != nil {
		return nil, err
	}
	return NewEncoderWithParams(params, doc)
}

// NewEncoderWithParams is NewEncoder with an explicit ChainParams, for chains
// configured through a ChainTable.
func NewEncoderWithParams(params ChainParams, doc SignDoc) (Encoder, error) {
	if err := checkSupported(params, doc.Msg); err != nil {
		return nil, err
	}
	switch params.Scheme {
	case SchemeLegacy:
		return &legacyEncoder{doc: doc}, nil
	case SchemeProto:
		return &protoEncoder{doc: doc}, nil
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrInvalidChainID, params.Scheme)
	}
}

// checkSupported rejects message variants that are not valid encodings under
// the active scheme, before any sign bytes are produced.
func checkSupported(params ChainParams, msg transaction.Msg) error {
	switch m := msg.(type) {
	case nil:
		return fmt.Errorf("%w: no message", ErrUnsupportedMessage)
	case *transaction.GovDAOTransfer, *transaction.GovChangeParam:
		// Governance messages postdate the legacy generation.
		if params.Scheme == SchemeLegacy {
			return fmt.Errorf("%w: %s requires the proto scheme", ErrUnsupportedMessage, msg.LegacyType())
		}
	case *transaction.GovUpgrade:
		if params.Scheme == SchemeLegacy {
			return fmt.Errorf("%w: %s requires the proto scheme", ErrUnsupportedMessage, msg.LegacyType())
		}
		if m.IsFeatureGrant() && !params.FeatureActive(FeatureGrantKey) {
			return fmt.Errorf("%w: feature grants require the %s activation", ErrUnsupportedMessage, FeatureGrantKey)
		}
	}
	return nil
}
