package models

import (
	"github.com/btcsuite/btcd/btcutil"
)

// Transaction is a decoded node transaction. Confirmations and Time are nil
// when the node omitted them.
type Transaction struct {
	Txid          string `json:"txid"`
	Vin           []Vin  `json:"vin"`
	Vout          []Vout `json:"vout"`
	Confirmations *int64 `json:"confirmations,omitempty"`
	Time          *int64 `json:"time,omitempty"`
}

// IsConfirmed reports whether the transaction has a non-zero confirmation
// count. An absent count counts as unconfirmed.
func (tx *Transaction) IsConfirmed() bool {
	return tx.Confirmations != nil && *tx.Confirmations != 0
}

// ConfirmationCount returns the confirmation count, 0 when absent.
func (tx *Transaction) ConfirmationCount() int64 {
	if tx.Confirmations == nil {
		return 0
	}
	return *tx.Confirmations
}

// SetConfirmations overrides the confirmation count.
func (tx *Transaction) SetConfirmations(n int64) {
	tx.Confirmations = &n
}

// Clone returns a copy whose Vin and Vout slices can be modified without
// touching the receiver.
func (tx *Transaction) Clone() *Transaction {
	c := *tx
	c.Vin = append([]Vin(nil), tx.Vin...)
	c.Vout = append([]Vout(nil), tx.Vout...)
	return &c
}

type Vin struct {
	Txid      string     `json:"txid,omitempty"`
	Vout      uint32     `json:"vout"`
	Coinbase  string     `json:"coinbase,omitempty"`
	ScriptSig *ScriptSig `json:"scriptSig,omitempty"`
	Sequence  uint32     `json:"sequence"`
}

// HasPrevOut is false for coinbase inputs, which reference no output.
func (v Vin) HasPrevOut() bool {
	return v.Txid != ""
}

type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

type Vout struct {
	N            uint32         `json:"n"`
	Value        btcutil.Amount `json:"valueSat"`
	ScriptPubKey *ScriptPubKey  `json:"scriptPubKey,omitempty"`
}

type ScriptPubKey struct {
	Type      string   `json:"type"`
	Addresses []string `json:"addresses,omitempty"`
	Hex       string   `json:"hex"`
	Asm       string   `json:"asm,omitempty"`
}

// Outpoint identifies a transaction output.
type Outpoint struct {
	Txid string
	N    uint32
}
