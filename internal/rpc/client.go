package rpc

import (
	"encoding/json"

	"addrscan/pkg/models"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// Client issues the raw-transaction and address-index calls of a node
// running with -addrindex. Every call is a single blocking HTTP POST.
type Client struct {
	client *rpcclient.Client
}

func NewClient(host, user, pass string) (*Client, error) {
	connCfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         pass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	client, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create RPC client")
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	c.client.Shutdown()
}

func (c *Client) call(method string, params ...interface{}) (json.RawMessage, error) {
	rawParams := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: marshal params", method)
		}
		rawParams = append(rawParams, b)
	}

	log.WithField("method", method).Debug("rpc call")
	res, err := c.client.RawRequest(method, rawParams)
	if err != nil {
		return nil, classify(method, err)
	}
	return res, nil
}

func (c *Client) GetInfo() (*models.NodeInfo, error) {
	res, err := c.call("getinfo")
	if err != nil {
		return nil, err
	}
	var info models.NodeInfo
	if err := json.Unmarshal(res, &info); err != nil {
		return nil, wrapData(err, "getinfo")
	}
	info.Raw = res
	return &info, nil
}

func (c *Client) GetRawMempool() ([]string, error) {
	res, err := c.call("getrawmempool")
	if err != nil {
		return nil, err
	}
	var txids []string
	if err := json.Unmarshal(res, &txids); err != nil {
		return nil, wrapData(err, "getrawmempool")
	}
	return txids, nil
}

// GetRawTransaction returns the serialized transaction as hex.
func (c *Client) GetRawTransaction(txid string) (string, error) {
	if err := checkTxid(txid); err != nil {
		return "", err
	}
	res, err := c.call("getrawtransaction", txid)
	if err != nil {
		return "", err
	}
	var txHex string
	if err := json.Unmarshal(res, &txHex); err != nil {
		return "", wrapData(err, "getrawtransaction %s", txid)
	}
	return txHex, nil
}

func (c *Client) DecodeRawTransaction(txHex string) (*models.Transaction, error) {
	res, err := c.call("decoderawtransaction", txHex)
	if err != nil {
		return nil, err
	}
	return decodeTransaction("decoderawtransaction", res)
}

// GetTransaction returns the verbose form of a transaction, including its
// confirmation count and input scripts.
func (c *Client) GetTransaction(txid string) (*models.Transaction, error) {
	if err := checkTxid(txid); err != nil {
		return nil, err
	}
	res, err := c.call("getrawtransaction", txid, 1)
	if err != nil {
		return nil, err
	}
	return decodeTransaction("getrawtransaction", res)
}

// SearchRawTransactions returns up to count verbose transactions touching
// address, skipping the first skip. Entries that cannot be decoded are
// reported as ErrData. A node answering "no information" yields an empty
// page.
func (c *Client) SearchRawTransactions(address string, skip, count int) ([]*models.Transaction, error) {
	res, err := c.call("searchrawtransactions", address, 1, skip, count)
	if isNoTxInfo(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raws []rawTransaction
	if err := json.Unmarshal(res, &raws); err != nil {
		return nil, wrapData(err, "searchrawtransactions %s", address)
	}

	txs := make([]*models.Transaction, 0, len(raws))
	for i := range raws {
		tx, err := raws[i].toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "searchrawtransactions %s", address)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func decodeTransaction(method string, res json.RawMessage) (*models.Transaction, error) {
	var raw rawTransaction
	if err := json.Unmarshal(res, &raw); err != nil {
		return nil, wrapData(err, "%s", method)
	}
	tx, err := raw.toModel()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", method)
	}
	return tx, nil
}
