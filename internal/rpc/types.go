package rpc

import (
	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// satoshiExp is the decimal exponent of the smallest unit.
const satoshiExp = 8

type rawTransaction struct {
	Txid          string    `json:"txid"`
	Vin           []rawVin  `json:"vin"`
	Vout          []rawVout `json:"vout"`
	Confirmations *int64    `json:"confirmations"`
	Time          *int64    `json:"time"`
}

type rawVin struct {
	Txid      string            `json:"txid"`
	Vout      uint32            `json:"vout"`
	Coinbase  string            `json:"coinbase"`
	ScriptSig *models.ScriptSig `json:"scriptSig"`
	Sequence  uint32            `json:"sequence"`
}

type rawVout struct {
	Value        decimal.NullDecimal `json:"value"`
	N            *uint32             `json:"n"`
	ScriptPubKey *rawScriptPubKey    `json:"scriptPubKey"`
}

type rawScriptPubKey struct {
	Type      string   `json:"type"`
	Hex       string   `json:"hex"`
	Asm       string   `json:"asm"`
	Addresses []string `json:"addresses"`
	// Newer nodes report a single "address" instead of the list.
	Address string `json:"address"`
}

func (r *rawTransaction) toModel() (*models.Transaction, error) {
	if err := checkTxid(r.Txid); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Txid:          r.Txid,
		Vin:           make([]models.Vin, 0, len(r.Vin)),
		Vout:          make([]models.Vout, 0, len(r.Vout)),
		Confirmations: r.Confirmations,
		Time:          r.Time,
	}

	for _, in := range r.Vin {
		if in.Txid != "" {
			if err := checkTxid(in.Txid); err != nil {
				return nil, errors.Wrapf(err, "%s: input", r.Txid)
			}
		}
		tx.Vin = append(tx.Vin, models.Vin{
			Txid:      in.Txid,
			Vout:      in.Vout,
			Coinbase:  in.Coinbase,
			ScriptSig: in.ScriptSig,
			Sequence:  in.Sequence,
		})
	}

	seen := make(map[uint32]struct{}, len(r.Vout))
	for i, out := range r.Vout {
		if out.N == nil {
			return nil, dataErrorf("%s: output %d has no index", r.Txid, i)
		}
		if _, dup := seen[*out.N]; dup {
			return nil, dataErrorf("%s: duplicate output index %d", r.Txid, *out.N)
		}
		seen[*out.N] = struct{}{}

		if !out.Value.Valid {
			return nil, dataErrorf("%s:%d has no value", r.Txid, *out.N)
		}
		amount, err := toAmount(out.Value.Decimal)
		if err != nil {
			return nil, wrapData(err, "%s:%d", r.Txid, *out.N)
		}

		vout := models.Vout{N: *out.N, Value: amount}
		if spk := out.ScriptPubKey; spk != nil {
			addresses := spk.Addresses
			if addresses == nil && spk.Address != "" {
				addresses = []string{spk.Address}
			}
			vout.ScriptPubKey = &models.ScriptPubKey{
				Type:      spk.Type,
				Addresses: addresses,
				Hex:       spk.Hex,
				Asm:       spk.Asm,
			}
		}
		tx.Vout = append(tx.Vout, vout)
	}

	return tx, nil
}

func checkTxid(txid string) error {
	if len(txid) != chainhash.MaxHashStringSize {
		return dataErrorf("invalid txid %q", txid)
	}
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return wrapData(err, "invalid txid %q", txid)
	}
	return nil
}

// toAmount converts a coin-denominated decimal to satoshis. Values finer than
// one satoshi are rounded half to even.
func toAmount(value decimal.Decimal) (btcutil.Amount, error) {
	if value.IsNegative() {
		return 0, dataErrorf("negative value %s", value)
	}
	sat := value.Shift(satoshiExp)
	rounded := sat.RoundBank(0)
	if !rounded.Equal(sat) {
		log.WithField("value", value.String()).Warn("value below satoshi precision, rounding")
	}
	if !rounded.BigInt().IsInt64() {
		return 0, dataErrorf("value %s out of range", value)
	}
	return btcutil.Amount(rounded.IntPart()), nil
}
