// Package provider defines the broadcast boundary of the SDK and a
// single-shot HTTP implementation of it.
//
// Everything behind this boundary — retry, timeout, dispatcher failover —
// is the provider's own policy and opaque to the signing subsystem.
package provider

import (
	"context"
	"encoding/hex"
	"encoding/json"
)

// Provider is the broadcast capability consumed by the transaction builder.
type Provider interface {
	// SendTransaction broadcasts a built raw transaction and returns the
	// node's response. Errors are returned to the caller unchanged; the
	// builder never retries or rewraps them.
	SendTransaction(ctx context.Context, raw *RawTransaction) (*TxResponse, error)
}

// RawTransaction is the terminal artifact of a transaction build: the
// originating address paired with the final on-wire bytes. Immutable once
// produced.
type RawTransaction struct {
	// Address is the originating account, lowercase hex.
	Address string
	// Tx is the final transaction encoding.
	Tx []byte
}

// TxHex returns the transaction bytes as lowercase hex, the boundary
// representation.
func (r *RawTransaction) TxHex() string { return hex.EncodeToString(r.Tx) }

// MarshalJSON renders the broadcast request body the node expects.
func (r *RawTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address     string `json:"address"`
		RawHexBytes string `json:"raw_hex_bytes"`
	}{r.Address, r.TxHex()})
}

// TxResponse is the node's answer to a broadcast.
type TxResponse struct {
	// TxHash identifies the accepted transaction.
	TxHash string `json:"txhash"`
	// RawLog carries the node's log output for the check-tx pass, if any.
	RawLog string `json:"raw_log,omitempty"`
}
