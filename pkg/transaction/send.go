package transaction

import "google.golang.org/protobuf/encoding/protowire"

var _ Msg = (*Send)(nil)
var _ SenderDefaulter = (*Send)(nil)

// Send transfers tokens between two accounts.
type Send struct {
	// FromAddress is the sending account. Optional at construction; the
	// builder defaults it to the signer's address.
	FromAddress string `json:"from_address" validate:"omitempty,hexadecimal,len=40"`
	// ToAddress is the receiving account.
	ToAddress string `json:"to_address" validate:"required,hexadecimal,len=40"`
	// Amount is the transfer amount in the chain's smallest denomination,
	// as a decimal string.
	Amount string `json:"amount" validate:"required"`
}

// NewSend constructs a Send message. FromAddress may be empty, in which case
// the builder fills in the signer's address at build time.
func NewSend(fromAddress, toAddress, amount string) (*Send, error) {
	msg := &Send{FromAddress: fromAddress, ToAddress: toAddress, Amount: amount}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	if err := validateAmount("amount", amount); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *Send) WithDefaultSender(addr string) Msg {
	if m.FromAddress != "" {
		return m
	}
	cp := *m
	cp.FromAddress = addr
	return &cp
}

// Validate implements Msg.
func (m *Send) Validate() error {
	if err := requireField("from_address", m.FromAddress); err != nil {
		return err
	}
	if err := validateStruct(m); err != nil {
		return err
	}
	return validateAmount("amount", m.Amount)
}

// LegacyType implements Msg.
func (m *Send) LegacyType() string { return "pos/Send" }

// LegacyValue implements Msg.
func (m *Send) LegacyValue() any {
	return struct {
		FromAddress string `json:"from_address"`
		ToAddress   string `json:"to_address"`
		Amount      string `json:"amount"`
	}{m.FromAddress, m.ToAddress, m.Amount}
}

// ProtoTypeURL implements Msg.
func (m *Send) ProtoTypeURL() string { return "/x.nodes.MsgSend" }

// ProtoBytes implements Msg.
//
// Layout: 1 fromAddress bytes, 2 toAddress bytes, 3 amount string.
func (m *Send) ProtoBytes() ([]byte, error) {
	from, err := addressBytes("from_address", m.FromAddress)
	if err != nil {
		return nil, err
	}
	to, err := addressBytes("to_address", m.ToAddress)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), from)
	b = appendBytesField(b, protowire.Number(2), to)
	b = appendStringField(b, protowire.Number(3), m.Amount)
	return b, nil
}
