package addrindex

import "addrscan/pkg/models"

// Node is the subset of the node RPC surface the index reads from. Calls are
// issued one at a time; an implementation is free to batch or parallelise
// independent fetches behind this interface.
type Node interface {
	GetInfo() (*models.NodeInfo, error)
	GetRawMempool() ([]string, error)
	GetRawTransaction(txid string) (string, error)
	DecodeRawTransaction(txHex string) (*models.Transaction, error)
	SearchRawTransactions(address string, skip, count int) ([]*models.Transaction, error)
	GetTransaction(txid string) (*models.Transaction, error)
}

// Table indexes transactions by txid.
type Table map[string]*models.Transaction

// NewTable indexes txs. A later duplicate replaces an earlier one.
func NewTable(txs []*models.Transaction) Table {
	t := make(Table, len(txs))
	for _, tx := range txs {
		t[tx.Txid] = tx
	}
	return t
}
