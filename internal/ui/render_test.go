package ui

import (
	"testing"

	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"
)

func TestCoins(t *testing.T) {
	assert.Equal(t, "0.30000001", coins(30000001))
	assert.Equal(t, "-0.00005000", coins(-5000))
	assert.Equal(t, "21.00000000", coins(2100000000))
}

func TestRenderAddressInfo(t *testing.T) {
	info := models.NewAddressInfo("SAddr", 30000001, 10000000, -5000, 3, 1, []string{"m1", "c1"})
	out := RenderAddressInfo(info)

	assert.Contains(t, out, "SAddr")
	assert.Contains(t, out, "0.20000001")
	assert.Contains(t, out, "0.30000001")
	assert.Contains(t, out, "-0.00005000")
	assert.Contains(t, out, "3 confirmed, 1 unconfirmed")
	assert.Contains(t, out, "m1")
}

func TestRenderUTXOs(t *testing.T) {
	out := RenderUTXOs("SAddr", []models.UTXO{
		{Txid: "aa", Vout: 1, Satoshis: 900, Confirmations: 0},
		{Txid: "bb", Vout: 0, Satoshis: 100, Confirmations: 6},
	})

	assert.Contains(t, out, "aa:1")
	assert.Contains(t, out, "6 conf")
	assert.Contains(t, out, "2 outputs")
	assert.Contains(t, out, "0.00001000")
}

func TestRenderTransaction(t *testing.T) {
	confs, ts := int64(4), int64(0)
	tx := &models.Transaction{
		Txid:          "t1",
		Confirmations: &confs,
		Time:          &ts,
		Vin:           []models.Vin{{Coinbase: "03ab"}, {Txid: "p0", Vout: 2}},
		Vout: []models.Vout{{
			N:            0,
			Value:        btcutil.Amount(5000000000),
			ScriptPubKey: &models.ScriptPubKey{Type: "pubkeyhash", Addresses: []string{"SAddr"}},
		}},
	}
	out := RenderTransaction(tx)

	assert.Contains(t, out, "1970-01-01T00:00:00Z")
	assert.Contains(t, out, "coinbase")
	assert.Contains(t, out, "p0:2")
	assert.Contains(t, out, "50.00000000")
	assert.Contains(t, out, "SAddr")
}

func TestRenderNodeInfo(t *testing.T) {
	out := RenderNodeInfo(&models.NodeInfo{Version: 90300, Blocks: 1234, TestNet: true, Errors: "warning"})

	assert.Contains(t, out, "90300")
	assert.Contains(t, out, "1234")
	assert.Contains(t, out, "testnet")
	assert.Contains(t, out, "warning")
}
