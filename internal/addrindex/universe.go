package addrindex

import (
	"addrscan/pkg/models"
)

// Universe is the txid-keyed set of transactions considered for one query.
// Iteration follows first-insertion order. Confirmed entries take precedence
// over mempool entries with the same txid.
type Universe struct {
	order []string
	txs   map[string]*models.Transaction
}

func NewUniverse() *Universe {
	return &Universe{txs: make(map[string]*models.Transaction)}
}

// AddMempool inserts txs whose txid is not present yet.
func (u *Universe) AddMempool(txs ...*models.Transaction) {
	for _, tx := range txs {
		if _, ok := u.txs[tx.Txid]; ok {
			continue
		}
		u.put(tx)
	}
}

// AddConfirmed inserts txs, replacing any entry with the same txid. A
// replaced entry keeps its position.
func (u *Universe) AddConfirmed(txs ...*models.Transaction) {
	for _, tx := range txs {
		u.put(tx)
	}
}

func (u *Universe) put(tx *models.Transaction) {
	if _, ok := u.txs[tx.Txid]; !ok {
		u.order = append(u.order, tx.Txid)
	}
	u.txs[tx.Txid] = tx
}

func (u *Universe) Get(txid string) (*models.Transaction, bool) {
	tx, ok := u.txs[txid]
	return tx, ok
}

func (u *Universe) Len() int {
	return len(u.order)
}

// Transactions returns the transactions in insertion order.
func (u *Universe) Transactions() []*models.Transaction {
	txs := make([]*models.Transaction, 0, len(u.order))
	for _, txid := range u.order {
		txs = append(txs, u.txs[txid])
	}
	return txs
}

// PruneSpent returns a copy of the universe without the outputs that are
// spent by an input of one of its transactions. Spends by transactions
// outside the universe are invisible here, so their outputs survive.
func (u *Universe) PruneSpent() *Universe {
	spent := make(map[models.Outpoint]struct{})
	for _, txid := range u.order {
		for _, in := range u.txs[txid].Vin {
			if !in.HasPrevOut() {
				continue
			}
			if _, ok := u.txs[in.Txid]; ok {
				spent[models.Outpoint{Txid: in.Txid, N: in.Vout}] = struct{}{}
			}
		}
	}

	pruned := NewUniverse()
	for _, txid := range u.order {
		tx := u.txs[txid].Clone()
		tx.Vout = tx.Vout[:0]
		for _, out := range u.txs[txid].Vout {
			if _, ok := spent[models.Outpoint{Txid: txid, N: out.N}]; ok {
				continue
			}
			tx.Vout = append(tx.Vout, out)
		}
		pruned.put(tx)
	}
	return pruned
}
