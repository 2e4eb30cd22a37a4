package models

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil"
)

// AddressInfo keeps the field names of the insight-style address endpoint,
// misspellings included.
type AddressInfo struct {
	Address                 string   `json:"addrStr"`
	Balance                 float64  `json:"balance"`
	BalanceSat              int64    `json:"balanceSat"`
	TotalReceived           float64  `json:"totalReceived"`
	TotalReceivedSat        int64    `json:"totalReceivedSat"`
	TotalSent               float64  `json:"totalSent"`
	TotalSentSat            int64    `json:"totalSentSat"`
	UnconfirmedBalance      float64  `json:"unconfirmedBalance"`
	UnconfirmedBalanceSat   int64    `json:"unconfirmedBalanceSat"`
	UnconfirmedTxAppearance int      `json:"unconfirmedTxApperances"`
	TxAppearances           int      `json:"txApperances"`
	Transactions            []string `json:"transactions"`
}

// NewAddressInfo builds the record from satoshi totals. The decimal fields
// are derived here and nowhere else.
func NewAddressInfo(address string, received, sent, unconfirmed btcutil.Amount, confirmedTxs, unconfirmedTxs int, txids []string) *AddressInfo {
	balance := received - sent
	if txids == nil {
		txids = []string{}
	}
	return &AddressInfo{
		Address:                 address,
		Balance:                 balance.ToBTC(),
		BalanceSat:              int64(balance),
		TotalReceived:           received.ToBTC(),
		TotalReceivedSat:        int64(received),
		TotalSent:               sent.ToBTC(),
		TotalSentSat:            int64(sent),
		UnconfirmedBalance:      unconfirmed.ToBTC(),
		UnconfirmedBalanceSat:   int64(unconfirmed),
		UnconfirmedTxAppearance: unconfirmedTxs,
		TxAppearances:           confirmedTxs,
		Transactions:            txids,
	}
}

type UTXO struct {
	Address       string  `json:"address"`
	Txid          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Timestamp     int64   `json:"ts"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Amount        float64 `json:"amount"`
	Satoshis      int64   `json:"satoshis"`
	Confirmations int64   `json:"confirmations"`
}

type NodeInfo struct {
	Version         int64           `json:"version"`
	ProtocolVersion int64           `json:"protocolversion"`
	Blocks          int64           `json:"blocks"`
	Connections     int64           `json:"connections"`
	Difficulty      float64         `json:"difficulty"`
	TestNet         bool            `json:"testnet"`
	Errors          string          `json:"errors"`
	Raw             json.RawMessage `json:"-"`
}
