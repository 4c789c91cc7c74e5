package builder

import (
	"crypto/rand"
	"math"
	"math/big"
)

// EntropySource produces the per-transaction nonce that keeps sign documents
// distinct across builds. It is an anti-replay measure, not a cryptographic
// entropy guarantee: the protocol offers no explicit collision bound, so two
// concurrent builds may in principle draw the same value and the network is
// the final arbiter of replays.
type EntropySource func() (int64, error)

var entropyMax = big.NewInt(math.MaxInt64)

// CryptoEntropy is the default EntropySource, drawing uniformly from
// [0, MaxInt64) via crypto/rand.
func CryptoEntropy() (int64, error) {
	n, err := rand.Int(rand.Reader, entropyMax)
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
