package addrindex

import (
	"sort"
	"time"

	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
)

// Index answers address queries against a node. It holds no per-query
// state and is safe to share between goroutines querying different
// addresses.
type Index struct {
	node   Node
	params *chaincfg.Params
	search SearchOptions
	policy InputScanPolicy
	now    func() time.Time
}

type Option func(*Index)

func WithNetwork(params *chaincfg.Params) Option {
	return func(ix *Index) { ix.params = params }
}

func WithSearchOptions(opts SearchOptions) Option {
	return func(ix *Index) { ix.search = opts }
}

func WithInputScanPolicy(policy InputScanPolicy) Option {
	return func(ix *Index) { ix.policy = policy }
}

// WithClock sets the time source used to stamp outputs of transactions the
// node reported without a time.
func WithClock(now func() time.Time) Option {
	return func(ix *Index) { ix.now = now }
}

func NewIndex(node Node, opts ...Option) *Index {
	ix := &Index{
		node:   node,
		params: &MainNetParams,
		policy: FirstMatch,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

func (ix *Index) GetInfo() (*models.NodeInfo, error) {
	return ix.node.GetInfo()
}

func (ix *Index) GetTransaction(txid string) (*models.Transaction, error) {
	return ix.node.GetTransaction(txid)
}

// ListUnspent returns the outputs of address that no transaction in the
// mempool or in the address history spends.
func (ix *Index) ListUnspent(address string) ([]models.UTXO, error) {
	mempool, err := FetchMempool(ix.node)
	if err != nil {
		return nil, err
	}
	confirmed, err := Search(ix.node, address, ix.search)
	if err != nil {
		return nil, err
	}

	u := NewUniverse()
	u.AddMempool(mempool...)
	u.AddConfirmed(confirmed...)

	now := ix.now().Unix()
	utxos := make([]models.UTXO, 0)
	for _, tx := range u.PruneSpent().Transactions() {
		ts := now
		if tx.Time != nil {
			ts = *tx.Time
		}
		for i := range tx.Vout {
			out := &tx.Vout[i]
			if !IsMine(out, address, false) {
				continue
			}
			utxos = append(utxos, models.UTXO{
				Address:       address,
				Txid:          tx.Txid,
				Vout:          out.N,
				Timestamp:     ts,
				ScriptPubKey:  out.ScriptPubKey.Hex,
				Amount:        out.Value.ToBTC(),
				Satoshis:      int64(out.Value),
				Confirmations: tx.ConfirmationCount(),
			})
		}
	}

	log.WithFields(log.Fields{
		"address": address,
		"utxos":   len(utxos),
	}).Debug("listed unspent")

	return utxos, nil
}

// GetAddressInfo totals what address received and sent. Confirmed flows
// feed the received and sent totals; unconfirmed ones net out in a single
// unconfirmed balance. Transaction ids are ordered by ascending
// confirmations, mempool entries first.
func (ix *Index) GetAddressInfo(address string) (*models.AddressInfo, error) {
	mempool, err := FetchMempool(ix.node)
	if err != nil {
		return nil, err
	}
	confirmedTxs, err := Search(ix.node, address, ix.search)
	if err != nil {
		return nil, err
	}

	delta := ResolveMempool(mempool, NewTable(confirmedTxs), address, ix.policy)

	u := NewUniverse()
	u.AddMempool(delta.Incoming...)
	u.AddMempool(delta.Outgoing...)
	u.AddConfirmed(confirmedTxs...)

	var (
		received, sent, unconfirmed  btcutil.Amount
		confirmedCount, mempoolCount int
	)
	txs := u.Transactions()
	for _, tx := range txs {
		confirmed := tx.IsConfirmed()

		for i := range tx.Vout {
			if !IsMine(&tx.Vout[i], address, false) {
				continue
			}
			if confirmed {
				received += tx.Vout[i].Value
			} else {
				unconfirmed += tx.Vout[i].Value
			}
		}

		for _, in := range tx.Vin {
			if !in.HasPrevOut() {
				continue
			}
			src, ok := u.Get(in.Txid)
			if !ok {
				continue
			}
			out := FindOutput(src.Vout, in.Vout)
			if !IsMine(out, address, false) {
				continue
			}
			if confirmed {
				sent += out.Value
			} else {
				unconfirmed -= out.Value
			}
		}

		if confirmed {
			confirmedCount++
		} else {
			mempoolCount++
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].ConfirmationCount() < txs[j].ConfirmationCount()
	})
	txids := make([]string, 0, len(txs))
	for _, tx := range txs {
		txids = append(txids, tx.Txid)
	}

	log.WithFields(log.Fields{
		"address":     address,
		"confirmed":   confirmedCount,
		"unconfirmed": mempoolCount,
	}).Debug("aggregated address")

	return models.NewAddressInfo(address, received, sent, unconfirmed, confirmedCount, mempoolCount, txids), nil
}
