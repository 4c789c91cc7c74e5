// Package builder orchestrates transaction builds: it assembles the sign
// document, drives the signer, and assembles the broadcastable transaction.
package builder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/poktfn/pocket-go/pkg/codec"
	"github.com/poktfn/pocket-go/pkg/log"
	"github.com/poktfn/pocket-go/pkg/provider"
	"github.com/poktfn/pocket-go/pkg/sign"
	"github.com/poktfn/pocket-go/pkg/transaction"
)

var (
	// ErrNoSigner is returned at construction when no signer is configured.
	ErrNoSigner = errors.New("no signer configured")
	// ErrNoProvider is returned at construction when no provider is
	// configured.
	ErrNoProvider = errors.New("no provider configured")
	// ErrMissingMessage is returned when a build is attempted without a
	// message.
	ErrMissingMessage = errors.New("missing transaction message")
)

// Default fee applied when the caller leaves it unset.
const (
	DefaultFee   = "10000"
	DefaultDenom = "upokt"
)

// Config assembles a TransactionBuilder. Signer, Provider and ChainID are
// required; everything else has working defaults.
type Config struct {
	// Signer produces signatures and reports the originating identity.
	Signer sign.Signer
	// Provider broadcasts built transactions.
	Provider provider.Provider
	// ChainID selects the target network and thus the encoding scheme.
	ChainID codec.ChainID
	// ChainTable overrides the built-in scheme table when set.
	ChainTable *codec.ChainTable
	// Entropy overrides the default crypto/rand nonce source. Tests inject
	// a deterministic source here.
	Entropy EntropySource
	// Logger defaults to a no-op logger.
	Logger log.Logger
}

// TxOptions carries the per-build inputs of one transaction.
type TxOptions struct {
	// Msg is the transaction message. Required.
	Msg transaction.Msg
	// Fee is the fee amount as a decimal string. Defaults to DefaultFee.
	Fee string
	// Memo is an optional free-form note carried on chain.
	Memo string
}

// TransactionBuilder builds, signs and submits transactions. It holds only
// long-lived configuration; every build call constructs its own sign
// document and signature from call-local inputs, so concurrent builds never
// interfere.
type TransactionBuilder struct {
	signer   sign.Signer
	provider provider.Provider
	table    *codec.ChainTable
	entropy  EntropySource
	lg       log.Logger
	tracer   trace.Tracer

	mu      sync.RWMutex
	chainID codec.ChainID
}

// NewTransactionBuilder creates a TransactionBuilder, failing fast on absent
// collaborators rather than at call time.
func NewTransactionBuilder(cfg Config) (*TransactionBuilder, error) {
	if cfg.Signer == nil {
		return nil, ErrNoSigner
	}
	if cfg.Provider == nil {
		return nil, ErrNoProvider
	}
	chainID, err := codec.ParseChainID(string(cfg.ChainID))
	if err != nil {
		return nil, err
	}
	entropy := cfg.Entropy
	if entropy == nil {
		entropy = CryptoEntropy
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return &TransactionBuilder{
		signer:   cfg.Signer,
		provider: cfg.Provider,
		table:    cfg.ChainTable,
		entropy:  entropy,
		lg:       lg.NewSystem("tx-builder"),
		tracer:   otel.Tracer("pocket-go/builder"),
		chainID:  chainID,
	}, nil
}

// ChainID returns the currently configured chain identifier.
func (b *TransactionBuilder) ChainID() codec.ChainID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.chainID
}

// SetChainID switches the target network. Values outside the supported
// enumeration are rejected.
func (b *TransactionBuilder) SetChainID(id codec.ChainID) error {
	parsed, err := codec.ParseChainID(string(id))
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chainID = parsed
	return nil
}

// CreateTransaction builds and signs one transaction:
// it validates the message, resolves defaults from the live signer,
// generates the entropy nonce, renders the canonical sign bytes, awaits the
// signer, and assembles the final transaction bytes. The signer await is the
// only suspension point; no timeout is imposed here, cancellation is the
// caller's via ctx.
func (b *TransactionBuilder) CreateTransaction(ctx context.Context, opts TxOptions) (*provider.RawTransaction, error) {
	ctx, span := b.tracer.Start(ctx, "builder.CreateTransaction")
	defer span.End()

	if opts.Msg == nil {
		return nil, ErrMissingMessage
	}
	fee := opts.Fee
	if fee == "" {
		fee = DefaultFee
	}

	// Defaults resolve from the live signer on every build; the signer's
	// identity may change between calls, so nothing is memoized.
	signerAddress := b.signer.PublicKey().Address().String()
	msg := opts.Msg
	if defaulter, ok := msg.(transaction.SenderDefaulter); ok {
		msg = defaulter.WithDefaultSender(signerAddress)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	nonce, err := b.entropy()
	if err != nil {
		return nil, fmt.Errorf("generating entropy: %w", err)
	}

	chainID := b.ChainID()
	span.SetAttributes(
		attribute.String("tx.chain_id", string(chainID)),
		attribute.String("tx.msg_type", msg.LegacyType()),
	)

	doc := codec.SignDoc{
		ChainID: string(chainID),
		Entropy: strconv.FormatInt(nonce, 10),
		Fee:     codec.Coin{Amount: fee, Denom: DefaultDenom},
		Memo:    opts.Memo,
		Msg:     msg,
	}

	enc, err := b.newEncoder(chainID, doc)
	if err != nil {
		return nil, err
	}
	signBytes, err := enc.SignBytes()
	if err != nil {
		return nil, err
	}

	// Suspension point: the signer may be remote or hardware-bound. Its
	// errors pass through unchanged.
	signature, err := b.signer.Sign(ctx, signBytes)
	if err != nil {
		return nil, err
	}

	finalBytes, err := enc.FinalBytes(codec.TxSignature{
		PublicKey: b.signer.PublicKey().Bytes(),
		Signature: signature,
	})
	if err != nil {
		return nil, err
	}

	b.lg.Debug("transaction built",
		"chainID", chainID, "msgType", msg.LegacyType(), "entropy", doc.Entropy)
	return &provider.RawTransaction{Address: signerAddress, Tx: finalBytes}, nil
}

// Submit builds, signs and broadcasts one transaction. Provider errors pass
// through unchanged.
func (b *TransactionBuilder) Submit(ctx context.Context, opts TxOptions) (*provider.TxResponse, error) {
	raw, err := b.CreateTransaction(ctx, opts)
	if err != nil {
		return nil, err
	}
	return b.provider.SendTransaction(ctx, raw)
}

// SubmitRaw broadcasts an already-built raw transaction, bypassing the build
// steps entirely.
func (b *TransactionBuilder) SubmitRaw(ctx context.Context, raw *provider.RawTransaction) (*provider.TxResponse, error) {
	return b.provider.SendTransaction(ctx, raw)
}

func (b *TransactionBuilder) newEncoder(chainID codec.ChainID, doc codec.SignDoc) (codec.Encoder, error) {
	if b.table != nil {
		return b.table.NewEncoder(chainID, doc)
	}
	return codec.NewEncoder(chainID, doc)
}
