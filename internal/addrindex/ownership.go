package addrindex

import (
	"slices"

	"addrscan/pkg/models"
)

const scriptTypeMultisig = "multisig"

// IsMine reports whether vout pays address. Bare multisig outputs only count
// when allowMultisig is set. P2SH-wrapped ownership is not detected.
func IsMine(vout *models.Vout, address string, allowMultisig bool) bool {
	if vout == nil || vout.ScriptPubKey == nil {
		return false
	}
	spk := vout.ScriptPubKey
	if !allowMultisig && spk.Type == scriptTypeMultisig {
		return false
	}
	if spk.Addresses == nil {
		return false
	}
	return slices.Contains(spk.Addresses, address)
}

func HasOwnedOutput(tx *models.Transaction, address string) bool {
	for i := range tx.Vout {
		if IsMine(&tx.Vout[i], address, false) {
			return true
		}
	}
	return false
}

// HasOwnedInput reports whether any input of tx spends an output of address
// found in known, which maps txids to their outputs.
func HasOwnedInput(tx *models.Transaction, known map[string][]models.Vout, address string) bool {
	for _, in := range tx.Vin {
		if !in.HasPrevOut() {
			continue
		}
		outs, ok := known[in.Txid]
		if !ok {
			continue
		}
		if IsMine(FindOutput(outs, in.Vout), address, false) {
			return true
		}
	}
	return false
}

// FindOutput returns the output with index n, or nil.
func FindOutput(outputs []models.Vout, n uint32) *models.Vout {
	for i := range outputs {
		if outputs[i].N == n {
			return &outputs[i]
		}
	}
	return nil
}
