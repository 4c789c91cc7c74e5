package transaction

import "google.golang.org/protobuf/encoding/protowire"

// Validator (node) lifecycle messages: stake, unstake, unjail. The network's
// non-custodial staking model separates the operator key (which runs the
// node) from the output address (which receives rewards and the unstaked
// principal), so stake-family messages carry both identities.

var _ Msg = (*NodeStake)(nil)
var _ SenderDefaulter = (*NodeStake)(nil)

// NodeStake stakes a validator node for the given relay chains.
type NodeStake struct {
	// PublicKey is the operator's ed25519 public key, hex encoded.
	PublicKey string `json:"public_key" validate:"required,hexadecimal,len=64"`
	// Chains is the set of relay chain identifiers the node serves.
	Chains []string `json:"chains" validate:"required,min=1,dive,required"`
	// Amount is the stake amount as a decimal string.
	Amount string `json:"amount" validate:"required"`
	// ServiceURL is the node's publicly reachable relay endpoint.
	ServiceURL string `json:"service_url" validate:"required,url"`
	// OutputAddress receives rewards and the unstaked principal. Optional at
	// construction; the builder defaults it to the signer's address.
	OutputAddress string `json:"output_address" validate:"omitempty,hexadecimal,len=40"`
}

// NewNodeStake constructs a NodeStake message. OutputAddress may be empty,
// in which case the builder fills in the signer's address at build time.
func NewNodeStake(publicKey string, chains []string, amount, serviceURL, outputAddress string) (*NodeStake, error) {
	msg := &NodeStake{
		PublicKey:     publicKey,
		Chains:        chains,
		Amount:        amount,
		ServiceURL:    serviceURL,
		OutputAddress: outputAddress,
	}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	if err := validateAmount("amount", amount); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *NodeStake) WithDefaultSender(addr string) Msg {
	if m.OutputAddress != "" {
		return m
	}
	cp := *m
	cp.OutputAddress = addr
	return &cp
}

// Validate implements Msg.
func (m *NodeStake) Validate() error {
	if err := requireField("output_address", m.OutputAddress); err != nil {
		return err
	}
	if err := validateStruct(m); err != nil {
		return err
	}
	return validateAmount("amount", m.Amount)
}

// LegacyType implements Msg.
func (m *NodeStake) LegacyType() string { return "pos/8.0MsgStake" }

// LegacyValue implements Msg.
func (m *NodeStake) LegacyValue() any {
	return struct {
		PublicKey     legacyPublicKey `json:"public_key"`
		Chains        []string        `json:"chains"`
		Value         string          `json:"value"`
		ServiceURL    string          `json:"service_url"`
		OutputAddress string          `json:"output_address"`
	}{newLegacyPublicKey(m.PublicKey), m.Chains, m.Amount, m.ServiceURL, m.OutputAddress}
}

// ProtoTypeURL implements Msg.
func (m *NodeStake) ProtoTypeURL() string { return "/x.nodes.MsgProtoStake8" }

// ProtoBytes implements Msg.
//
// Layout: 1 publickey bytes, 2 chains repeated string, 3 value string,
// 4 serviceUrl string, 5 outAddress bytes.
func (m *NodeStake) ProtoBytes() ([]byte, error) {
	pub, err := publicKeyBytes("public_key", m.PublicKey)
	if err != nil {
		return nil, err
	}
	out, err := addressBytes("output_address", m.OutputAddress)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), pub)
	b = appendRepeatedStringField(b, protowire.Number(2), m.Chains)
	b = appendStringField(b, protowire.Number(3), m.Amount)
	b = appendStringField(b, protowire.Number(4), m.ServiceURL)
	b = appendBytesField(b, protowire.Number(5), out)
	return b, nil
}

var _ Msg = (*NodeUnstake)(nil)
var _ SenderDefaulter = (*NodeUnstake)(nil)

// NodeUnstake begins unstaking a validator node.
type NodeUnstake struct {
	// ValidatorAddress is the operator account being unstaked.
	ValidatorAddress string `json:"validator_address" validate:"required,hexadecimal,len=40"`
	// SignerAddress is the account authorizing the unstake (operator or
	// output owner). Optional at construction; the builder defaults it to
	// the signer's address.
	SignerAddress string `json:"signer_address" validate:"omitempty,hexadecimal,len=40"`
}

// NewNodeUnstake constructs a NodeUnstake message. SignerAddress may be
// empty, in which case the builder fills in the signer's address at build
// time.
func NewNodeUnstake(validatorAddress, signerAddress string) (*NodeUnstake, error) {
	msg := &NodeUnstake{ValidatorAddress: validatorAddress, SignerAddress: signerAddress}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *NodeUnstake) WithDefaultSender(addr string) Msg {
	if m.SignerAddress != "" {
		return m
	}
	cp := *m
	cp.SignerAddress = addr
	return &cp
}

// Validate implements Msg.
func (m *NodeUnstake) Validate() error {
	if err := requireField("signer_address", m.SignerAddress); err != nil {
		return err
	}
	return validateStruct(m)
}

// LegacyType implements Msg.
func (m *NodeUnstake) LegacyType() string { return "pos/8.0MsgBeginUnstake" }

// LegacyValue implements Msg.
func (m *NodeUnstake) LegacyValue() any {
	return struct {
		ValidatorAddress string `json:"validator_address"`
		SignerAddress    string `json:"signer_address"`
	}{m.ValidatorAddress, m.SignerAddress}
}

// ProtoTypeURL implements Msg.
func (m *NodeUnstake) ProtoTypeURL() string { return "/x.nodes.MsgBeginUnstake8" }

// ProtoBytes implements Msg.
//
// Layout: 1 address bytes, 2 signer bytes.
func (m *NodeUnstake) ProtoBytes() ([]byte, error) {
	validator, err := addressBytes("validator_address", m.ValidatorAddress)
	if err != nil {
		return nil, err
	}
	signer, err := addressBytes("signer_address", m.SignerAddress)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), validator)
	b = appendBytesField(b, protowire.Number(2), signer)
	return b, nil
}

var _ Msg = (*NodeUnjail)(nil)
var _ SenderDefaulter = (*NodeUnjail)(nil)

// NodeUnjail releases a jailed validator node back into the active set.
type NodeUnjail struct {
	// ValidatorAddress is the jailed operator account.
	ValidatorAddress string `json:"validator_address" validate:"required,hexadecimal,len=40"`
	// SignerAddress is the account authorizing the unjail. Optional at
	// construction; the builder defaults it to the signer's address.
	SignerAddress string `json:"signer_address" validate:"omitempty,hexadecimal,len=40"`
}

// NewNodeUnjail constructs a NodeUnjail message. SignerAddress may be empty,
// in which case the builder fills in the signer's address at build time.
func NewNodeUnjail(validatorAddress, signerAddress string) (*NodeUnjail, error) {
	msg := &NodeUnjail{ValidatorAddress: validatorAddress, SignerAddress: signerAddress}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *NodeUnjail) WithDefaultSender(addr string) Msg {
	if m.SignerAddress != "" {
		return m
	}
	cp := *m
	cp.SignerAddress = addr
	return &cp
}

// Validate implements Msg.
func (m *NodeUnjail) Validate() error {
	if err := requireField("signer_address", m.SignerAddress); err != nil {
		return err
	}
	return validateStruct(m)
}

// LegacyType implements Msg.
func (m *NodeUnjail) LegacyType() string { return "pos/8.0MsgUnjail" }

// LegacyValue implements Msg.
func (m *NodeUnjail) LegacyValue() any {
	return struct {
		Address       string `json:"address"`
		SignerAddress string `json:"signer_address"`
	}{m.ValidatorAddress, m.SignerAddress}
}

// ProtoTypeURL implements Msg.
func (m *NodeUnjail) ProtoTypeURL() string { return "/x.nodes.MsgUnjail8" }

// ProtoBytes implements Msg.
//
// Layout: 1 validatorAddr bytes, 2 signer bytes.
func (m *NodeUnjail) ProtoBytes() ([]byte, error) {
	validator, err := addressBytes("validator_address", m.ValidatorAddress)
	if err != nil {
		return nil, err
	}
	signer, err := addressBytes("signer_address", m.SignerAddress)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), validator)
	b = appendBytesField(b, protowire.Number(2), signer)
	return b, nil
}
