package builder_test

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/poktfn/pocket-go/pkg/builder"
	"github.com/poktfn/pocket-go/pkg/codec"
	"github.com/poktfn/pocket-go/pkg/provider"
	"github.com/poktfn/pocket-go/pkg/sign"
	"github.com/poktfn/pocket-go/pkg/transaction"
)

const (
	testPrivateKeyHex = "1f8cbde30ef5a9db0a5a9d5eb40536fc9defc318b8581d543808b7504e0902bc" +
		"b243b27bc9fbe5580457a46370ae5f03a6f6753633e51efdaf2cf534fdc26cc3"
	testAddressHex = "b50a6e20d3733fb89631ae32385b3c85c533c560"
	destAddressHex = "fcf719ca739dccbc281b12bc0d671aaa7a015848"
)

func newTestBuilder(t *testing.T, chainID codec.ChainID, overrides ...func(*builder.Config)) (*builder.TransactionBuilder, *sign.Ed25519Signer, *provider.MockProvider) {
	t.Helper()
	signer, err := sign.NewEd25519SignerFromHex(testPrivateKeyHex)
	require.NoError(t, err)
	mockProvider := provider.NewMockProvider(&provider.TxResponse{TxHash: "ABC123"})

	cfg := builder.Config{
		Signer:   signer,
		Provider: mockProvider,
		ChainID:  chainID,
		Entropy:  func() (int64, error) { return 42, nil },
	}
	for _, o := range overrides {
		o(&cfg)
	}
	b, err := builder.NewTransactionBuilder(cfg)
	require.NoError(t, err)
	return b, signer, mockProvider
}

func sendMsg(t *testing.T, from string) *transaction.Send {
	t.Helper()
	msg, err := transaction.NewSend(from, destAddressHex, "1000000")
	require.NoError(t, err)
	return msg
}

func TestNewTransactionBuilder(t *testing.T) {
	signer, err := sign.NewEd25519SignerFromHex(testPrivateKeyHex)
	require.NoError(t, err)
	mockProvider := provider.NewMockProvider(nil)

	t.Run("requires a signer", func(t *testing.T) {
		_, err := builder.NewTransactionBuilder(builder.Config{Provider: mockProvider, ChainID: codec.ChainMainnet})
		assert.ErrorIs(t, err, builder.ErrNoSigner)
	})

	t.Run("requires a provider", func(t *testing.T) {
		_, err := builder.NewTransactionBuilder(builder.Config{Signer: signer, ChainID: codec.ChainMainnet})
		assert.ErrorIs(t, err, builder.ErrNoProvider)
	})

	t.Run("requires a supported chain id", func(t *testing.T) {
		_, err := builder.NewTransactionBuilder(builder.Config{Signer: signer, Provider: mockProvider, ChainID: "devnet"})
		assert.ErrorIs(t, err, codec.ErrInvalidChainID)
	})
}

func TestSetChainID(t *testing.T) {
	b, _, _ := newTestBuilder(t, codec.ChainMainnet)

	require.NoError(t, b.SetChainID(codec.ChainTestnet))
	assert.Equal(t, codec.ChainTestnet, b.ChainID())

	err := b.SetChainID("betanet")
	assert.ErrorIs(t, err, codec.ErrInvalidChainID)
	assert.Equal(t, codec.ChainTestnet, b.ChainID())
}

func TestCreateTransaction(t *testing.T) {
	t.Run("proto scheme end to end", func(t *testing.T) {
		b, signer, _ := newTestBuilder(t, codec.ChainMainnet)

		raw, err := b.CreateTransaction(context.Background(), builder.TxOptions{
			Msg:  sendMsg(t, testAddressHex),
			Memo: "e2e",
		})
		require.NoError(t, err)
		assert.Equal(t, testAddressHex, raw.Address)

		// Recompute the sign bytes independently and verify the embedded
		// signature against the signer's reported public key.
		doc := codec.SignDoc{
			ChainID: "mainnet",
			Entropy: "42",
			Fee:     codec.Coin{Amount: builder.DefaultFee, Denom: builder.DefaultDenom},
			Memo:    "e2e",
			Msg:     sendMsg(t, testAddressHex),
		}
		enc, err := codec.NewEncoder(codec.ChainMainnet, doc)
		require.NoError(t, err)
		signBytes, err := enc.SignBytes()
		require.NoError(t, err)

		signature := extractProtoSignature(t, raw.Tx)
		assert.True(t, ed25519.Verify(signer.PublicKey().Bytes(), signBytes, signature))
	})

	t.Run("legacy scheme defaults fee and sender", func(t *testing.T) {
		b, _, _ := newTestBuilder(t, codec.ChainLocalnet)

		raw, err := b.CreateTransaction(context.Background(), builder.TxOptions{
			Msg: sendMsg(t, ""), // sender left unset
		})
		require.NoError(t, err)

		var tx struct {
			Entropy string       `json:"entropy"`
			Fee     []codec.Coin `json:"fee"`
			Msg     struct {
				Value struct {
					FromAddress string `json:"from_address"`
				} `json:"value"`
			} `json:"msg"`
		}
		require.NoError(t, json.Unmarshal(raw.Tx, &tx))
		assert.Equal(t, "42", tx.Entropy)
		require.Len(t, tx.Fee, 1)
		assert.Equal(t, builder.DefaultFee, tx.Fee[0].Amount)
		assert.Equal(t, builder.DefaultDenom, tx.Fee[0].Denom)
		assert.Equal(t, testAddressHex, tx.Msg.Value.FromAddress)
	})

	t.Run("missing message", func(t *testing.T) {
		b, _, _ := newTestBuilder(t, codec.ChainMainnet)
		_, err := b.CreateTransaction(context.Background(), builder.TxOptions{})
		assert.ErrorIs(t, err, builder.ErrMissingMessage)
	})

	t.Run("validation failures never reach the signer", func(t *testing.T) {
		pub, err := sign.NewEd25519PublicKey(make([]byte, 32))
		require.NoError(t, err)
		mockSigner := sign.NewMockSigner(pub)

		b, err := builder.NewTransactionBuilder(builder.Config{
			Signer:   mockSigner,
			Provider: provider.NewMockProvider(nil),
			ChainID:  codec.ChainMainnet,
		})
		require.NoError(t, err)

		_, err = b.CreateTransaction(context.Background(), builder.TxOptions{
			Msg: &transaction.Send{ToAddress: "", Amount: "100"},
		})
		assert.ErrorIs(t, err, transaction.ErrMissingField)
		assert.Empty(t, mockSigner.SignCalls())
	})

	t.Run("unsupported messages fail before the signer call", func(t *testing.T) {
		pub, err := sign.NewEd25519PublicKey(make([]byte, 32))
		require.NoError(t, err)
		mockSigner := sign.NewMockSigner(pub)

		b, err := builder.NewTransactionBuilder(builder.Config{
			Signer:   mockSigner,
			Provider: provider.NewMockProvider(nil),
			ChainID:  codec.ChainLocalnet, // legacy scheme
		})
		require.NoError(t, err)

		gov, err := transaction.NewGovChangeParam(testAddressHex, "pos/BlocksPerSession", `"4"`)
		require.NoError(t, err)
		_, err = b.CreateTransaction(context.Background(), builder.TxOptions{Msg: gov})
		assert.ErrorIs(t, err, codec.ErrUnsupportedMessage)
		assert.Empty(t, mockSigner.SignCalls())
	})

	t.Run("signer errors pass through unchanged", func(t *testing.T) {
		pub, err := sign.NewEd25519PublicKey(make([]byte, 32))
		require.NoError(t, err)
		mockSigner := sign.NewMockSigner(pub)
		signerErr := errors.New("hsm unavailable")
		mockSigner.FailWith(signerErr)

		b, err := builder.NewTransactionBuilder(builder.Config{
			Signer:   mockSigner,
			Provider: provider.NewMockProvider(nil),
			ChainID:  codec.ChainMainnet,
		})
		require.NoError(t, err)

		_, err = b.CreateTransaction(context.Background(), builder.TxOptions{Msg: sendMsg(t, testAddressHex)})
		assert.ErrorIs(t, err, signerErr)
	})

	t.Run("default entropy keeps concurrent builds distinct", func(t *testing.T) {
		// The entropy source carries no explicit collision bound; this is a
		// known limitation of the protocol's anti-replay design. Distinct
		// draws from [0, 2^63) are only overwhelmingly likely, not
		// guaranteed.
		b, _, _ := newTestBuilder(t, codec.ChainLocalnet, func(cfg *builder.Config) {
			cfg.Entropy = nil // use the default crypto/rand source
		})

		first, err := b.CreateTransaction(context.Background(), builder.TxOptions{Msg: sendMsg(t, "")})
		require.NoError(t, err)
		second, err := b.CreateTransaction(context.Background(), builder.TxOptions{Msg: sendMsg(t, "")})
		require.NoError(t, err)
		assert.NotEqual(t, first.Tx, second.Tx)
	})
}

func TestSubmit(t *testing.T) {
	t.Run("forwards the built transaction to the provider", func(t *testing.T) {
		b, _, mockProvider := newTestBuilder(t, codec.ChainMainnet)

		resp, err := b.Submit(context.Background(), builder.TxOptions{Msg: sendMsg(t, testAddressHex)})
		require.NoError(t, err)
		assert.Equal(t, "ABC123", resp.TxHash)

		sent := mockProvider.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, testAddressHex, sent[0].Address)
	})

	t.Run("provider errors pass through unchanged", func(t *testing.T) {
		b, _, mockProvider := newTestBuilder(t, codec.ChainMainnet)
		providerErr := errors.New("dispatcher unreachable")
		mockProvider.FailWith(providerErr)

		_, err := b.Submit(context.Background(), builder.TxOptions{Msg: sendMsg(t, testAddressHex)})
		assert.ErrorIs(t, err, providerErr)
	})

	t.Run("SubmitRaw bypasses the build steps", func(t *testing.T) {
		b, _, mockProvider := newTestBuilder(t, codec.ChainMainnet)

		raw := &provider.RawTransaction{Address: testAddressHex, Tx: []byte{0x01}}
		resp, err := b.SubmitRaw(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "ABC123", resp.TxHash)

		sent := mockProvider.Sent()
		require.Len(t, sent, 1)
		assert.Same(t, raw, sent[0])
	})
}

// extractProtoSignature pulls the signature bytes out of length-delimited
// proto transaction bytes (StdTx field 3, StdSignature field 2).
func extractProtoSignature(t *testing.T, final []byte) []byte {
	t.Helper()
	length, n := protowire.ConsumeVarint(final)
	require.Positive(t, n)
	payload := final[n:]
	require.Len(t, payload, int(length))

	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		require.Positive(t, n)
		payload = payload[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(payload)
			require.Positive(t, n)
			payload = payload[n:]
			if num == 3 {
				inner := v
				for len(inner) > 0 {
					innerNum, _, n := protowire.ConsumeTag(inner)
					require.Positive(t, n)
					inner = inner[n:]
					val, n := protowire.ConsumeBytes(inner)
					require.Positive(t, n)
					inner = inner[n:]
					if innerNum == 2 {
						return val
					}
				}
			}
		case protowire.VarintType:
			_, n := protowire.ConsumeVarint(payload)
			require.Positive(t, n)
			payload = payload[n:]
		default:
			t.Fatalf("unexpected wire type %v", typ)
		}
	}
	t.Fatal("signature not found in transaction bytes")
	return nil
}
