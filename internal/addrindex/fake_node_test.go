package addrindex

import (
	"fmt"

	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/cockroachdb/errors"
)

var errNotFound = errors.New("not found")

type fakeNode struct {
	info       *models.NodeInfo
	mempoolErr error
	mempool    []string
	raw        map[string]string
	rawErr     map[string]error
	decoded    map[string]*models.Transaction
	pages      [][]*models.Transaction
	verbose    map[string]*models.Transaction
	skips      []int
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		raw:     make(map[string]string),
		rawErr:  make(map[string]error),
		decoded: make(map[string]*models.Transaction),
		verbose: make(map[string]*models.Transaction),
	}
}

// addMempool registers txs as mempool entries that fetch and decode cleanly.
func (n *fakeNode) addMempool(txs ...*models.Transaction) {
	for _, tx := range txs {
		txHex := "hex-" + tx.Txid
		n.mempool = append(n.mempool, tx.Txid)
		n.raw[tx.Txid] = txHex
		n.decoded[txHex] = tx
	}
}

// addConfirmed appends txs as one search page.
func (n *fakeNode) addConfirmed(txs ...*models.Transaction) {
	n.pages = append(n.pages, txs)
}

func (n *fakeNode) GetInfo() (*models.NodeInfo, error) {
	if n.info == nil {
		return nil, errNotFound
	}
	return n.info, nil
}

func (n *fakeNode) GetRawMempool() ([]string, error) {
	if n.mempoolErr != nil {
		return nil, n.mempoolErr
	}
	return n.mempool, nil
}

func (n *fakeNode) GetRawTransaction(txid string) (string, error) {
	if err, ok := n.rawErr[txid]; ok {
		return "", err
	}
	txHex, ok := n.raw[txid]
	if !ok {
		return "", errNotFound
	}
	return txHex, nil
}

func (n *fakeNode) DecodeRawTransaction(txHex string) (*models.Transaction, error) {
	tx, ok := n.decoded[txHex]
	if !ok {
		return nil, errors.Newf("cannot decode %s", txHex)
	}
	return tx.Clone(), nil
}

func (n *fakeNode) SearchRawTransactions(address string, skip, count int) ([]*models.Transaction, error) {
	n.skips = append(n.skips, skip)
	page := skip / count
	if page >= len(n.pages) {
		return nil, nil
	}
	return n.pages[page], nil
}

func (n *fakeNode) GetTransaction(txid string) (*models.Transaction, error) {
	tx, ok := n.verbose[txid]
	if !ok {
		return nil, errors.Wrapf(errNotFound, "%s", txid)
	}
	return tx, nil
}

func newTx(txid string, confirmations int64, vin []models.Vin, vout ...models.Vout) *models.Transaction {
	tx := &models.Transaction{Txid: txid, Vin: vin, Vout: vout}
	tx.SetConfirmations(confirmations)
	return tx
}

func spends(refs ...models.Outpoint) []models.Vin {
	vin := make([]models.Vin, 0, len(refs))
	for _, ref := range refs {
		vin = append(vin, models.Vin{Txid: ref.Txid, Vout: ref.N})
	}
	return vin
}

func op(txid string, n uint32) models.Outpoint {
	return models.Outpoint{Txid: txid, N: n}
}

func pay(n uint32, sat int64, addresses ...string) models.Vout {
	return models.Vout{
		N:     n,
		Value: btcutil.Amount(sat),
		ScriptPubKey: &models.ScriptPubKey{
			Type:      "pubkeyhash",
			Addresses: addresses,
			Hex:       fmt.Sprintf("76a914%02d88ac", n),
		},
	}
}
