package addrindex

import (
	"addrscan/pkg/models"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 100
	DefaultMaxPages = 10000
)

// ErrPageLimit is returned when an address history does not fit in
// SearchOptions.MaxPages pages.
var ErrPageLimit = errors.New("address search page limit reached")

type SearchOptions struct {
	// PageSize is the number of transactions requested per call.
	PageSize int
	// MaxPages caps the number of non-empty pages. Negative means no cap.
	MaxPages int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxPages == 0 {
		o.MaxPages = DefaultMaxPages
	}
	return o
}

// Search pages through the address index until the node returns an empty
// page and returns the confirmed transactions in the order received.
// Entries without a confirmation count, or with zero confirmations, are
// dropped: unconfirmed transactions are only taken from the mempool.
func Search(node Node, address string, opts SearchOptions) ([]*models.Transaction, error) {
	opts = opts.withDefaults()

	var txs []*models.Transaction
	for page, skip := 0, 0; ; page, skip = page+1, skip+opts.PageSize {
		chunk, err := node.SearchRawTransactions(address, skip, opts.PageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to search %s at offset %d", address, skip)
		}
		if len(chunk) == 0 {
			log.WithFields(log.Fields{
				"address": address,
				"pages":   page,
				"txs":     len(txs),
			}).Debug("address search complete")
			return txs, nil
		}
		// The page after the last allowed one must be empty.
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			return nil, errors.Wrapf(ErrPageLimit, "%s: more than %d pages of %d", address, opts.MaxPages, opts.PageSize)
		}

		for _, tx := range chunk {
			if tx.IsConfirmed() {
				txs = append(txs, tx)
			}
		}
	}
}
