package transaction

import "google.golang.org/protobuf/encoding/protowire"

// Application lifecycle messages: stake, ownership transfer, unstake.

var _ Msg = (*AppStake)(nil)

// AppStake stakes an application into the network for the given relay chains.
type AppStake struct {
	// PublicKey is the application's ed25519 public key, hex encoded.
	PublicKey string `json:"public_key" validate:"required,hexadecimal,len=64"`
	// Chains is the set of relay chain identifiers the stake covers.
	Chains []string `json:"chains" validate:"required,min=1,dive,required"`
	// Amount is the stake amount as a decimal string.
	Amount string `json:"amount" validate:"required"`
}

// NewAppStake constructs an AppStake message.
func NewAppStake(publicKey string, chains []string, amount string) (*AppStake, error) {
	msg := &AppStake{PublicKey: publicKey, Chains: chains, Amount: amount}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Validate implements Msg.
func (m *AppStake) Validate() error {
	if err := validateStruct(m); err != nil {
		return err
	}
	return validateAmount("amount", m.Amount)
}

// LegacyType implements Msg.
func (m *AppStake) LegacyType() string { return "apps/MsgAppStake" }

// LegacyValue implements Msg.
func (m *AppStake) LegacyValue() any {
	return struct {
		PubKey legacyPublicKey `json:"pubkey"`
		Chains []string        `json:"chains"`
		Value  string          `json:"value"`
	}{newLegacyPublicKey(m.PublicKey), m.Chains, m.Amount}
}

// ProtoTypeURL implements Msg.
func (m *AppStake) ProtoTypeURL() string { return "/x.apps.MsgProtoStake" }

// ProtoBytes implements Msg.
//
// Layout: 1 pubKey bytes, 2 chains repeated string, 3 value string.
func (m *AppStake) ProtoBytes() ([]byte, error) {
	pub, err := publicKeyBytes("public_key", m.PublicKey)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), pub)
	b = appendRepeatedStringField(b, protowire.Number(2), m.Chains)
	b = appendStringField(b, protowire.Number(3), m.Amount)
	return b, nil
}

var _ Msg = (*AppTransfer)(nil)

// AppTransfer hands an application stake over to a new owner key. The new
// owner is identified by public key because the receiving account may not
// exist on chain yet.
type AppTransfer struct {
	// NewPublicKey is the receiving owner's ed25519 public key, hex encoded.
	NewPublicKey string `json:"new_public_key" validate:"required,hexadecimal,len=64"`
}

// NewAppTransfer constructs an AppTransfer message.
func NewAppTransfer(newPublicKey string) (*AppTransfer, error) {
	msg := &AppTransfer{NewPublicKey: newPublicKey}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Validate implements Msg.
func (m *AppTransfer) Validate() error { return validateStruct(m) }

// LegacyType implements Msg.
func (m *AppTransfer) LegacyType() string { return "apps/MsgAppTransfer" }

// LegacyValue implements Msg.
func (m *AppTransfer) LegacyValue() any {
	return struct {
		NewPublicKey string `json:"new_public_key"`
	}{m.NewPublicKey}
}

// ProtoTypeURL implements Msg.
func (m *AppTransfer) ProtoTypeURL() string { return "/x.apps.MsgAppTransfer" }

// ProtoBytes implements Msg.
//
// Layout: 1 newPubKey bytes.
func (m *AppTransfer) ProtoBytes() ([]byte, error) {
	pub, err := publicKeyBytes("new_public_key", m.NewPublicKey)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), pub)
	return b, nil
}

var _ Msg = (*AppUnstake)(nil)
var _ SenderDefaulter = (*AppUnstake)(nil)

// AppUnstake begins unstaking an application.
type AppUnstake struct {
	// Address is the application account to unstake. Optional at
	// construction; the builder defaults it to the signer's address.
	Address string `json:"address" validate:"omitempty,hexadecimal,len=40"`
}

// NewAppUnstake constructs an AppUnstake message. Address may be empty, in
// which case the builder fills in the signer's address at build time.
func NewAppUnstake(address string) (*AppUnstake, error) {
	msg := &AppUnstake{Address: address}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *AppUnstake) WithDefaultSender(addr string) Msg {
	if m.Address != "" {
		return m
	}
	cp := *m
	cp.Address = addr
	return &cp
}

// Validate implements Msg.
func (m *AppUnstake) Validate() error {
	if err := requireField("address", m.Address); err != nil {
		return err
	}
	return validateStruct(m)
}

// LegacyType implements Msg.
func (m *AppUnstake) LegacyType() string { return "apps/MsgAppBeginUnstake" }

// LegacyValue implements Msg.
func (m *AppUnstake) LegacyValue() any {
	return struct {
		ApplicationAddress string `json:"application_address"`
	}{m.Address}
}

// ProtoTypeURL implements Msg.
func (m *AppUnstake) ProtoTypeURL() string { return "/x.apps.MsgBeginUnstake" }

// ProtoBytes implements Msg.
//
// Layout: 1 address bytes.
func (m *AppUnstake) ProtoBytes() ([]byte, error) {
	addr, err := addressBytes("address", m.Address)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), addr)
	return b, nil
}
