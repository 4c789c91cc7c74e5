package codec

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"
)

// protoEncoder renders the newer-generation byte layout: a deterministic
// protobuf serialization for both the sign document and the final
// transaction. The layouts below are the full wire contract of this scheme;
// fields are emitted in ascending field-number order with default values
// omitted, which is what makes the rendering deterministic.
//
//	StdSignDoc:   1 chain_id string, 2 entropy int64, 3 fee Coin,
//	              4 memo string, 5 msg Any
//	Coin:         1 denom string, 2 amount string
//	Any:          1 type_url string, 2 value bytes
//	StdSignature: 1 public_key bytes, 2 signature bytes
//	StdTx:        1 msg Any, 2 fee Coin, 3 signature StdSignature,
//	              4 memo string, 5 entropy int64
//
// Final transaction bytes carry a varint length prefix, matching the
// length-delimited framing the network expects on broadcast.
type protoEncoder struct {
	doc SignDoc
}

// SignBytes implements Encoder.
func (e *protoEncoder) SignBytes() ([]byte, error) {
	entropy, err := parseEntropy(e.doc.Entropy)
	if err != nil {
		return nil, err
	}
	anyMsg, err := e.encodeAny()
	if err != nil {
		return nil, err
	}

	var b []byte
	b = appendString(b, 1, e.doc.ChainID)
	b = appendInt64(b, 2, entropy)
	b = appendEmbedded(b, 3, e.encodeFee())
	b = appendString(b, 4, e.doc.Memo)
	b = appendEmbedded(b, 5, anyMsg)
	return b, nil
}

// FinalBytes implements Encoder.
func (e *protoEncoder) FinalBytes(sig TxSignature) ([]byte, error) {
	entropy, err := parseEntropy(e.doc.Entropy)
	if err != nil {
		return nil, err
	}
	anyMsg, err := e.encodeAny()
	if err != nil {
		return nil, err
	}

	var sigMsg []byte
	sigMsg = appendBytes(sigMsg, 1, sig.PublicKey)
	sigMsg = appendBytes(sigMsg, 2, sig.Signature)

	var tx []byte
	tx = appendEmbedded(tx, 1, anyMsg)
	tx = appendEmbedded(tx, 2, e.encodeFee())
	tx = appendEmbedded(tx, 3, sigMsg)
	tx = appendString(tx, 4, e.doc.Memo)
	tx = appendInt64(tx, 5, entropy)

	framed := protowire.AppendVarint(nil, uint64(len(tx)))
	return append(framed, tx...), nil
}

func (e *protoEncoder) encodeFee() []byte {
	var b []byte
	b = appendString(b, 1, e.doc.Fee.Denom)
	b = appendString(b, 2, e.doc.Fee.Amount)
	return b
}

func (e *protoEncoder) encodeAny() ([]byte, error) {
	value, err := e.doc.Msg.ProtoBytes()
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, e.doc.Msg.ProtoTypeURL())
	b = appendBytes(b, 2, value)
	return b, nil
}

// parseEntropy parses the decimal-string entropy nonce into the int64 the
// proto layout carries.
func parseEntropy(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative decimal integer", ErrInvalidEntropy, s)
	}
	return v, nil
}

// validateEntropy checks the nonce shape for schemes that carry it as a
// string.
func validateEntropy(s string) error {
	_, err := parseEntropy(s)
	return err
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendEmbedded(b []byte, num protowire.Number, msg []byte) []byte {
	if len(msg) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}
