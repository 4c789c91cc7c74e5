package keys_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poktfn/pocket-go/pkg/keys"
)

const (
	testPrivateKeyHex = "1f8cbde30ef5a9db0a5a9d5eb40536fc9defc318b8581d543808b7504e0902bc" +
		"b243b27bc9fbe5580457a46370ae5f03a6f6753633e51efdaf2cf534fdc26cc3"
	testPublicKeyHex = "b243b27bc9fbe5580457a46370ae5f03a6f6753633e51efdaf2cf534fdc26cc3"
	testAddressHex   = "b50a6e20d3733fb89631ae32385b3c85c533c560"
)

func TestDerivePublicKey(t *testing.T) {
	t.Run("returns the trailing 32 bytes unchanged", func(t *testing.T) {
		material, err := hex.DecodeString(testPrivateKeyHex)
		require.NoError(t, err)

		pub, err := keys.DerivePublicKey(material)
		require.NoError(t, err)
		assert.Equal(t, testPublicKeyHex, pub.String())
		assert.Equal(t, material[32:], []byte(pub))
	})

	t.Run("rejects wrong-length material", func(t *testing.T) {
		for _, size := range []int{0, 32, 63, 65, 128} {
			_, err := keys.DerivePublicKey(make([]byte, size))
			assert.ErrorIs(t, err, keys.ErrInvalidKeyLength, "size %d", size)
		}
	})

	t.Run("does not alias the input", func(t *testing.T) {
		material := make([]byte, keys.PrivateKeyMaterialSize)
		pub, err := keys.DerivePublicKey(material)
		require.NoError(t, err)

		material[40] = 0xff
		assert.Equal(t, byte(0), pub[8])
	})
}

func TestDeriveAddress(t *testing.T) {
	t.Run("end-to-end vector", func(t *testing.T) {
		material, err := hex.DecodeString(testPrivateKeyHex)
		require.NoError(t, err)

		pub, err := keys.DerivePublicKey(material)
		require.NoError(t, err)

		addr, err := keys.DeriveAddress(pub)
		require.NoError(t, err)
		assert.Equal(t, testAddressHex, addr.String())
		assert.Len(t, []byte(addr), keys.AddressSize)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		pub, err := keys.PublicKeyFromHex(testPublicKeyHex)
		require.NoError(t, err)

		first, err := keys.DeriveAddress(pub)
		require.NoError(t, err)
		second, err := keys.DeriveAddress(pub)
		require.NoError(t, err)
		assert.True(t, first.Equals(second))
	})

	t.Run("rejects wrong-length public keys", func(t *testing.T) {
		for _, size := range []int{0, 20, 31, 33, 64} {
			_, err := keys.DeriveAddress(make([]byte, size))
			assert.ErrorIs(t, err, keys.ErrInvalidKeyLength, "size %d", size)
		}
	})

	t.Run("custom hasher is honored", func(t *testing.T) {
		addr, err := keys.DeriveAddressWith(constHasher{}, make([]byte, keys.PublicKeySize))
		require.NoError(t, err)
		assert.Equal(t, "0101010101010101010101010101010101010101", addr.String())
	})
}

func TestHexBoundary(t *testing.T) {
	t.Run("address round trip", func(t *testing.T) {
		addr, err := keys.AddressFromHex(testAddressHex)
		require.NoError(t, err)
		assert.Equal(t, testAddressHex, addr.String())
	})

	t.Run("rejects bad hex and bad lengths", func(t *testing.T) {
		_, err := keys.AddressFromHex("zz")
		assert.Error(t, err)
		_, err = keys.AddressFromHex("abcd")
		assert.ErrorIs(t, err, keys.ErrInvalidKeyLength)
		_, err = keys.PublicKeyFromHex("abcd")
		assert.ErrorIs(t, err, keys.ErrInvalidKeyLength)
	})
}

type constHasher struct{}

func (constHasher) Sum(pub []byte) []byte {
	out := make([]byte, 32)
	for i := range out {
		out[i] = 1
	}
	return out
}
