package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/poktfn/pocket-go/pkg/canonical"
)

// legacyEncoder renders the legacy-generation byte layout: both the sign
// document and the final transaction are canonical JSON. Validators on
// legacy chains recompute the same canonical rendering, so key order here is
// load-bearing and delegated entirely to pkg/canonical.
type legacyEncoder struct {
	doc SignDoc
}

// legacy ed25519 public key rendering, shared with the amino message values.
const legacyEd25519KeyType = "crypto/ed25519_public_key"

type legacyMsg struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type legacySignDoc struct {
	ChainID string    `json:"chain_id"`
	Entropy string    `json:"entropy"`
	Fee     []Coin    `json:"fee"`
	Memo    string    `json:"memo"`
	Msg     legacyMsg `json:"msg"`
}

type legacySignature struct {
	PubKey struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"pub_key"`
	Signature string `json:"signature"`
}

type legacyStdTx struct {
	Entropy   string          `json:"entropy"`
	Fee       []Coin          `json:"fee"`
	Memo      string          `json:"memo"`
	Msg       legacyMsg       `json:"msg"`
	Signature legacySignature `json:"signature"`
}

// SignBytes implements Encoder.
func (e *legacyEncoder) SignBytes() ([]byte, error) {
	if err := validateEntropy(e.doc.Entropy); err != nil {
		return nil, err
	}
	doc := legacySignDoc{
		ChainID: e.doc.ChainID,
		Entropy: e.doc.Entropy,
		Fee:     []Coin{e.doc.Fee},
		Memo:    e.doc.Memo,
		Msg:     legacyMsg{Type: e.doc.Msg.LegacyType(), Value: e.doc.Msg.LegacyValue()},
	}
	out, err := canonical.Canonicalize(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering legacy sign bytes: %w", err)
	}
	return []byte(out), nil
}

// FinalBytes implements Encoder.
func (e *legacyEncoder) FinalBytes(sig TxSignature) ([]byte, error) {
	tx := legacyStdTx{
		Entropy: e.doc.Entropy,
		Fee:     []Coin{e.doc.Fee},
		Memo:    e.doc.Memo,
		Msg:     legacyMsg{Type: e.doc.Msg.LegacyType(), Value: e.doc.Msg.LegacyValue()},
	}
	tx.Signature.PubKey.Type = legacyEd25519KeyType
	tx.Signature.PubKey.Value = hex.EncodeToString(sig.PublicKey)
	tx.Signature.Signature = hex.EncodeToString(sig.Signature)

	out, err := canonical.Canonicalize(tx)
	if err != nil {
		return nil, fmt.Errorf("rendering legacy transaction bytes: %w", err)
	}
	return []byte(out), nil
}
