package sign_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poktfn/pocket-go/pkg/keys"
	"github.com/poktfn/pocket-go/pkg/sign"
)

const (
	testPrivateKeyHex = "1f8cbde30ef5a9db0a5a9d5eb40536fc9defc318b8581d543808b7504e0902bc" +
		"b243b27bc9fbe5580457a46370ae5f03a6f6753633e51efdaf2cf534fdc26cc3"
	testPublicKeyHex = "b243b27bc9fbe5580457a46370ae5f03a6f6753633e51efdaf2cf534fdc26cc3"
	testAddressHex   = "b50a6e20d3733fb89631ae32385b3c85c533c560"
)

func TestEd25519Signer(t *testing.T) {
	t.Run("reports the expected identity", func(t *testing.T) {
		signer, err := sign.NewEd25519SignerFromHex(testPrivateKeyHex)
		require.NoError(t, err)

		pub := signer.PublicKey()
		assert.Equal(t, testPublicKeyHex, hex.EncodeToString(pub.Bytes()))
		assert.Equal(t, testAddressHex, pub.Address().String())
	})

	t.Run("signatures verify against the reported public key", func(t *testing.T) {
		signer, err := sign.NewEd25519SignerFromHex(testPrivateKeyHex)
		require.NoError(t, err)

		msg := []byte("canonical sign bytes")
		sig, err := signer.Sign(context.Background(), msg)
		require.NoError(t, err)
		assert.True(t, ed25519.Verify(signer.PublicKey().Bytes(), msg, sig))
	})

	t.Run("rejects mismatched seed and public halves", func(t *testing.T) {
		material, err := hex.DecodeString(testPrivateKeyHex)
		require.NoError(t, err)
		material[63] ^= 0x01

		_, err = sign.NewEd25519Signer(material)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inconsistent")
	})

	t.Run("rejects wrong-length material", func(t *testing.T) {
		_, err := sign.NewEd25519Signer(make([]byte, 32))
		assert.ErrorIs(t, err, keys.ErrInvalidKeyLength)
	})

	t.Run("rejects invalid hex", func(t *testing.T) {
		_, err := sign.NewEd25519SignerFromHex("not-hex")
		assert.Error(t, err)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		signer, err := sign.NewEd25519SignerFromHex(testPrivateKeyHex)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = signer.Sign(ctx, []byte("data"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSignature(t *testing.T) {
	t.Run("renders lowercase hex without prefix", func(t *testing.T) {
		sig := sign.Signature{0xAB, 0xCD}
		assert.Equal(t, "abcd", sig.String())
	})

	t.Run("JSON round trip", func(t *testing.T) {
		sig := sign.Signature{0x01, 0x02, 0xff}
		raw, err := json.Marshal(sig)
		require.NoError(t, err)
		assert.Equal(t, `"0102ff"`, string(raw))

		var parsed sign.Signature
		require.NoError(t, json.Unmarshal(raw, &parsed))
		assert.Equal(t, sig, parsed)
	})
}

func TestAccountAddress(t *testing.T) {
	a, err := sign.NewAccountAddressFromHex(testAddressHex)
	require.NoError(t, err)
	b, err := sign.NewAccountAddressFromHex(testAddressHex)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.Equal(t, testAddressHex, a.String())

	_, err = sign.NewAccountAddressFromHex("abcd")
	assert.ErrorIs(t, err, keys.ErrInvalidKeyLength)
}
