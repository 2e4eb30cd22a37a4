package addrindex

import (
	"encoding/hex"
	"strings"

	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// RecoverPubKey looks for the public key behind address in the first input
// of each transaction in its history, in GetAddressInfo order. Only the
// standard pay-to-pubkey-hash spend layout "<sig> <pubkey>" is understood;
// anything else is skipped. found is false when no key matches.
func (ix *Index) RecoverPubKey(address string) (pubKey string, found bool, err error) {
	info, err := ix.GetAddressInfo(address)
	if err != nil {
		return "", false, err
	}

	for _, txid := range info.Transactions {
		tx, err := ix.node.GetTransaction(txid)
		if err != nil {
			return "", false, errors.Wrapf(err, "failed to fetch %s", txid)
		}

		candidate, ok := firstInputPubKey(tx)
		if !ok {
			continue
		}
		derived, err := PubKeyToAddress(candidate, ix.params)
		if err != nil {
			log.WithError(err).WithField("txid", txid).Debug("unusable public key")
			continue
		}
		if derived == address {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

func firstInputPubKey(tx *models.Transaction) (string, bool) {
	if len(tx.Vin) == 0 || tx.Vin[0].ScriptSig == nil {
		return "", false
	}
	fields := strings.Split(tx.Vin[0].ScriptSig.Asm, " ")
	if len(fields) < 2 || fields[1] == "" {
		return "", false
	}
	return fields[1], true
}

// PubKeyToAddress derives the pay-to-pubkey-hash address of a hex encoded
// public key, keeping its compressed or uncompressed serialization.
func PubKeyToAddress(pubKeyHex string, params *chaincfg.Params) (string, error) {
	serialized, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return "", errors.Wrap(err, "decode public key")
	}
	pk, err := btcutil.NewAddressPubKey(serialized, params)
	if err != nil {
		return "", errors.Wrap(err, "parse public key")
	}
	return pk.AddressPubKeyHash().EncodeAddress(), nil
}
