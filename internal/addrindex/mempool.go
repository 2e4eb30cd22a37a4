package addrindex

import (
	"fmt"

	"addrscan/pkg/models"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// InputScanPolicy controls how the inputs of a mempool transaction are
// examined when deciding whether it spends from the address.
type InputScanPolicy int

const (
	// FirstMatch stops at the first input that spends an owned output. It
	// also gives up on the transaction as soon as an input resolves to a
	// confirmed transaction whose referenced output is not owned.
	FirstMatch InputScanPolicy = iota
	// ScanAll examines every input until one spends an owned output.
	ScanAll
)

func (p InputScanPolicy) String() string {
	switch p {
	case FirstMatch:
		return "first-match"
	case ScanAll:
		return "scan-all"
	}
	return fmt.Sprintf("InputScanPolicy(%d)", int(p))
}

func ParseInputScanPolicy(s string) (InputScanPolicy, error) {
	switch s {
	case "", "first-match":
		return FirstMatch, nil
	case "scan-all":
		return ScanAll, nil
	}
	return 0, errors.Newf("unknown input scan policy %q", s)
}

// MempoolDelta holds the mempool-only transactions relevant to an address.
// A transaction appears in at most one of the two lists.
type MempoolDelta struct {
	Incoming []*models.Transaction
	Outgoing []*models.Transaction
}

// FetchMempool decodes every transaction currently in the node's mempool.
// A transaction that cannot be fetched or decoded is logged and skipped;
// only failing to list the mempool is an error. Every returned transaction
// has zero confirmations whatever the decoder reported.
func FetchMempool(node Node) ([]*models.Transaction, error) {
	txids, err := node.GetRawMempool()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list mempool")
	}

	txs := make([]*models.Transaction, 0, len(txids))
	for _, txid := range txids {
		txHex, err := node.GetRawTransaction(txid)
		if err != nil {
			log.WithError(err).WithField("txid", txid).Warn("skipping mempool transaction")
			continue
		}
		tx, err := node.DecodeRawTransaction(txHex)
		if err != nil {
			log.WithError(err).WithField("txid", txid).Warn("skipping undecodable mempool transaction")
			continue
		}
		tx.SetConfirmations(0)
		txs = append(txs, tx)
	}

	log.WithFields(log.Fields{
		"listed":  len(txids),
		"decoded": len(txs),
	}).Debug("fetched mempool")

	return txs, nil
}

// ResolveMempool picks the mempool transactions that pay to (Incoming) or
// spend from (Outgoing) address, ignoring any already in confirmed.
func ResolveMempool(mempool []*models.Transaction, confirmed Table, address string, policy InputScanPolicy) MempoolDelta {
	var delta MempoolDelta

	candidates := make([]*models.Transaction, 0, len(mempool))
	for _, tx := range mempool {
		if _, ok := confirmed[tx.Txid]; ok {
			continue
		}
		candidates = append(candidates, tx)
	}

	incoming := make(Table)
	for _, tx := range candidates {
		if HasOwnedOutput(tx, address) {
			incoming[tx.Txid] = tx
			delta.Incoming = append(delta.Incoming, tx)
		}
	}

	var known map[string][]models.Vout
	if policy == ScanAll {
		known = make(map[string][]models.Vout, len(incoming)+len(confirmed))
		for txid, tx := range confirmed {
			known[txid] = tx.Vout
		}
		for txid, tx := range incoming {
			known[txid] = tx.Vout
		}
	}

	for _, tx := range candidates {
		if _, ok := incoming[tx.Txid]; ok {
			continue
		}
		var spends bool
		if policy == ScanAll {
			spends = HasOwnedInput(tx, known, address)
		} else {
			spends = spendsFirstMatch(tx, incoming, confirmed, address)
		}
		if spends {
			delta.Outgoing = append(delta.Outgoing, tx)
		}
	}

	return delta
}

func spendsFirstMatch(tx *models.Transaction, incoming, confirmed Table, address string) bool {
	for _, in := range tx.Vin {
		if !in.HasPrevOut() {
			continue
		}
		if src, ok := incoming[in.Txid]; ok {
			if IsMine(FindOutput(src.Vout, in.Vout), address, false) {
				return true
			}
			continue
		}
		if src, ok := confirmed[in.Txid]; ok {
			// A miss here ends the scan for this transaction.
			return IsMine(FindOutput(src.Vout, in.Vout), address, false)
		}
	}
	return false
}
