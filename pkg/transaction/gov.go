package transaction

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Governance messages: DAO treasury movements, live parameter changes, and
// protocol upgrades. These exist only under the newer encoding scheme; the
// codec rejects them on legacy chains.

// DAO actions accepted by GovDAOTransfer.
const (
	DAOActionTransfer = "dao_transfer"
	DAOActionBurn     = "dao_burn"
)

// UpgradeFeatureVersion is the sentinel version string marking a GovUpgrade
// as a feature activation grant rather than a software upgrade.
const UpgradeFeatureVersion = "FEATURE"

var _ Msg = (*GovDAOTransfer)(nil)
var _ SenderDefaulter = (*GovDAOTransfer)(nil)

// GovDAOTransfer moves or burns funds out of the DAO treasury.
type GovDAOTransfer struct {
	// FromAddress is the DAO owner account. Optional at construction; the
	// builder defaults it to the signer's address.
	FromAddress string `json:"from_address" validate:"omitempty,hexadecimal,len=40"`
	// ToAddress is the destination account. Required for transfers, unused
	// for burns.
	ToAddress string `json:"to_address" validate:"omitempty,hexadecimal,len=40"`
	// Amount is the moved amount as a decimal string.
	Amount string `json:"amount" validate:"required"`
	// Action is either DAOActionTransfer or DAOActionBurn.
	Action string `json:"action" validate:"required,oneof=dao_transfer dao_burn"`
}

// NewGovDAOTransfer constructs a GovDAOTransfer message. FromAddress may be
// empty, in which case the builder fills in the signer's address at build
// time.
func NewGovDAOTransfer(fromAddress, toAddress, amount, action string) (*GovDAOTransfer, error) {
	msg := &GovDAOTransfer{FromAddress: fromAddress, ToAddress: toAddress, Amount: amount, Action: action}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	if err := msg.validateShape(); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *GovDAOTransfer) WithDefaultSender(addr string) Msg {
	if m.FromAddress != "" {
		return m
	}
	cp := *m
	cp.FromAddress = addr
	return &cp
}

func (m *GovDAOTransfer) validateShape() error {
	if m.Action == DAOActionTransfer && m.ToAddress == "" {
		return fmt.Errorf("%w: to_address", ErrMissingField)
	}
	return validateAmount("amount", m.Amount)
}

// Validate implements Msg.
func (m *GovDAOTransfer) Validate() error {
	if err := requireField("from_address", m.FromAddress); err != nil {
		return err
	}
	if err := validateStruct(m); err != nil {
		return err
	}
	return m.validateShape()
}

// LegacyType implements Msg.
func (m *GovDAOTransfer) LegacyType() string { return "gov/msg_dao_transfer" }

// LegacyValue implements Msg.
func (m *GovDAOTransfer) LegacyValue() any {
	return struct {
		FromAddress string `json:"from_address"`
		ToAddress   string `json:"to_address"`
		Amount      string `json:"amount"`
		Action      string `json:"action"`
	}{m.FromAddress, m.ToAddress, m.Amount, m.Action}
}

// ProtoTypeURL implements Msg.
func (m *GovDAOTransfer) ProtoTypeURL() string { return "/x.gov.MsgDAOTransfer" }

// ProtoBytes implements Msg.
//
// Layout: 1 fromAddress bytes, 2 toAddress bytes, 3 amount string,
// 4 action string.
func (m *GovDAOTransfer) ProtoBytes() ([]byte, error) {
	from, err := addressBytes("from_address", m.FromAddress)
	if err != nil {
		return nil, err
	}
	var to []byte
	if m.ToAddress != "" {
		if to, err = addressBytes("to_address", m.ToAddress); err != nil {
			return nil, err
		}
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), from)
	b = appendBytesField(b, protowire.Number(2), to)
	b = appendStringField(b, protowire.Number(3), m.Amount)
	b = appendStringField(b, protowire.Number(4), m.Action)
	return b, nil
}

var _ Msg = (*GovChangeParam)(nil)
var _ SenderDefaulter = (*GovChangeParam)(nil)

// GovChangeParam changes a live consensus or module parameter.
type GovChangeParam struct {
	// FromAddress is the ACL-holder account. Optional at construction; the
	// builder defaults it to the signer's address.
	FromAddress string `json:"from_address" validate:"omitempty,hexadecimal,len=40"`
	// ParamKey is the fully qualified parameter key, e.g. "pos/BlocksPerSession".
	ParamKey string `json:"param_key" validate:"required"`
	// ParamValue is the raw JSON encoding of the new value.
	ParamValue string `json:"param_value" validate:"required,json"`
}

// NewGovChangeParam constructs a GovChangeParam message. FromAddress may be
// empty, in which case the builder fills in the signer's address at build
// time.
func NewGovChangeParam(fromAddress, paramKey, paramValue string) (*GovChangeParam, error) {
	msg := &GovChangeParam{FromAddress: fromAddress, ParamKey: paramKey, ParamValue: paramValue}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithDefaultSender implements SenderDefaulter.
func (m *GovChangeParam) WithDefaultSender(addr string) Msg {
	if m.FromAddress != "" {
		return m
	}
	cp := *m
	cp.FromAddress = addr
	return &cp
}

// Validate implements Msg.
func (m *GovChangeParam) Validate() error {
	if err := requireField("from_address", m.FromAddress); err != nil {
		return err
	}
	return validateStruct(m)
}

// LegacyType implements Msg.
func (m *GovChangeParam) LegacyType() string { return "gov/msg_change_param" }

// LegacyValue implements Msg.
func (m *GovChangeParam) LegacyValue() any {
	return struct {
		Address    string `json:"address"`
		ParamKey   string `json:"param_key"`
		ParamValue string `json:"param_value"`
	}{m.FromAddress, m.ParamKey, m.ParamValue}
}

// ProtoTypeURL implements Msg.
func (m *GovChangeParam) ProtoTypeURL() string { return "/x.gov.MsgChangeParam" }

// ProtoBytes implements Msg.
//
// Layout: 1 fromAddress bytes, 2 paramKey string, 3 paramVal bytes.
func (m *GovChangeParam) ProtoBytes() ([]byte, error) {
	from, err := addressBytes("from_address", m.FromAddress)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytesField(b, protowire.Number(1), from)
	b = appendStringField(b, protowire.Number(2), m.ParamKey)
	b = appendBytesField(b, protowire.Number(3), []byte(m.ParamValue))
	return b, nil
}

var _ Msg = (*GovUpgrade)(nil)
var _ SenderDefaulter = (*GovUpgrade)(nil)

// GovUpgrade schedules a protocol upgrade at a designated height, or — in
// its feature-grant form (Version == UpgradeFeatureVersion) — activates named
// feature keys. The feature-grant form is itself feature-gated; the codec
// rejects it on chains without the activation.
type GovUpgrade struct {
	// FromAddress is the ACL-holder account. Optional at construction; the
	// builder defaults it to the signer's address.
	FromAddress string `json:"from_address" validate:"omitempty,hexadecimal,len=40"`
	// Height is the activation height for a software upgrade. Zero in the
	// feature-grant form.
	Height int64 `json:"height"`
	// Version is the software version to upgrade to, or
	// UpgradeFeatureVersion for a feature grant.
	Version string `json:"version" validate:"required"`
	// Features lists "KEY:HEIGHT" feature activations for the feature-grant
	// form. Empty otherwise.
	Features []string `json:"features" validate:"omitempty,dive,required"`
}

// NewGovUpgrade constructs a GovUpgrade message. FromAddress may be empty,
// in which case the builder fills in the signer's address at build time.
func NewGovUpgrade(fromAddress string, height int64, version string, features []string) (*GovUpgrade, error) {
	msg := &GovUpgrade{FromAddress: fromAddress, Height: height, Version: version, Features: features}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	if err := msg.validateShape(); err != nil {
		return nil, err
	}
	return msg, nil
}

// IsFeatureGrant reports whether this upgrade activates feature keys instead
// of scheduling a software upgrade.
func (m *GovUpgrade) IsFeatureGrant() bool { return m.Version == UpgradeFeatureVersion }

// WithDefaultSender implements SenderDefaulter.
func (m *GovUpgrade) WithDefaultSender(addr string) Msg {
	if m.FromAddress != "" {
		return m
	}
	cp := *m
	cp.FromAddress = addr
	return &cp
}

func (m *GovUpgrade) validateShape() error {
	if m.IsFeatureGrant() {
		if len(m.Features) == 0 {
			return fmt.Errorf("%w: features", ErrMissingField)
		}
		return nil
	}
	if m.Height <= 0 {
		return fmt.Errorf("%w: height must be positive for a software upgrade", ErrInvalidField)
	}
	return nil
}

// Validate implements Msg.
func (m *GovUpgrade) Validate() error {
	if err := requireField("from_address", m.FromAddress); err != nil {
		return err
	}
	if err := validateStruct(m); err != nil {
		return err
	}
	return m.validateShape()
}

// LegacyType implements Msg.
func (m *GovUpgrade) LegacyType() string { return "gov/msg_upgrade" }

// LegacyValue implements Msg.
func (m *GovUpgrade) LegacyValue() any {
	type upgrade struct {
		Height   int64    `json:"Height"`
		Version  string   `json:"Version"`
		Features []string `json:"features,omitempty"`
	}
	return struct {
		Address string  `json:"address"`
		Upgrade upgrade `json:"upgrade"`
	}{m.FromAddress, upgrade{m.Height, m.Version, m.Features}}
}

// ProtoTypeURL implements Msg.
func (m *GovUpgrade) ProtoTypeURL() string { return "/x.gov.MsgUpgrade" }

// ProtoBytes implements Msg.
//
// Layout: 1 address bytes, 2 upgrade embedded
// (1 height int64, 2 version string, 3 features repeated string).
func (m *GovUpgrade) ProtoBytes() ([]byte, error) {
	from, err := addressBytes("from_address", m.FromAddress)
	if err != nil {
		return nil, err
	}
	var up []byte
	up = appendInt64Field(up, protowire.Number(1), m.Height)
	up = appendStringField(up, protowire.Number(2), m.Version)
	up = appendRepeatedStringField(up, protowire.Number(3), m.Features)

	var b []byte
	b = appendBytesField(b, protowire.Number(1), from)
	b = appendEmbeddedField(b, protowire.Number(2), up)
	return b, nil
}
