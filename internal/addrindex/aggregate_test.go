package addrindex

import (
	"testing"
	"time"

	"addrscan/pkg/models"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestIndex(node Node, opts ...Option) *Index {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewIndex(node, opts...)
}

func TestGetAddressInfoConfirmedOnly(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(
		newTx("c1", 3, nil, pay(0, 10000000, me)),
		newTx("c2", 2, nil, pay(0, 5, other), pay(1, 20000000, me)),
		newTx("c3", 1, nil, pay(0, 1, me)),
	)

	info, err := newTestIndex(node).GetAddressInfo(me)
	require.NoError(t, err)

	assert.Equal(t, me, info.Address)
	assert.Equal(t, int64(30000001), info.TotalReceivedSat)
	assert.Equal(t, int64(0), info.TotalSentSat)
	assert.Equal(t, int64(30000001), info.BalanceSat)
	assert.Equal(t, int64(0), info.UnconfirmedBalanceSat)
	assert.InDelta(t, 0.30000001, info.TotalReceived, 1e-12)
	assert.InDelta(t, 0.30000001, info.Balance, 1e-12)
	assert.Equal(t, 3, info.TxAppearances)
	assert.Equal(t, 0, info.UnconfirmedTxAppearance)
	assert.Equal(t, []string{"c3", "c2", "c1"}, info.Transactions)
}

func TestGetAddressInfoConfirmedSpend(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(
		newTx("c1", 5, nil, pay(0, 1000, me)),
		newTx("c2", 3, spends(op("c1", 0)), pay(0, 600, other), pay(1, 300, me)),
	)

	info, err := newTestIndex(node).GetAddressInfo(me)
	require.NoError(t, err)

	assert.Equal(t, int64(1300), info.TotalReceivedSat)
	assert.Equal(t, int64(1000), info.TotalSentSat)
	assert.Equal(t, int64(300), info.BalanceSat)
	assert.Equal(t, info.TotalReceivedSat-info.TotalSentSat, info.BalanceSat)
}

func TestGetAddressInfoMempoolSpend(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(newTx("c1", 2, nil, pay(0, 5000, me)))
	node.addMempool(newTx("m1", 0, spends(op("c1", 0)), pay(0, 4900, other)))

	ix := newTestIndex(node)
	info, err := ix.GetAddressInfo(me)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), info.TotalReceivedSat)
	assert.Equal(t, int64(0), info.TotalSentSat)
	assert.Equal(t, int64(-5000), info.UnconfirmedBalanceSat)
	assert.InDelta(t, -0.00005, info.UnconfirmedBalance, 1e-12)
	assert.Equal(t, 1, info.UnconfirmedTxAppearance)
	assert.Equal(t, []string{"m1", "c1"}, info.Transactions)

	utxos, err := ix.ListUnspent(me)
	require.NoError(t, err)
	assert.Empty(t, utxos)
}

func TestGetAddressInfoMempoolSpendWithChange(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(newTx("c1", 2, nil, pay(0, 5000, me)))
	node.addMempool(
		newTx("m1", 0, spends(op("c1", 0)), pay(0, 4000, other), pay(1, 900, me)),
		newTx("noise", 0, spends(op("zz", 0)), pay(0, 1, other)),
	)

	ix := newTestIndex(node)
	info, err := ix.GetAddressInfo(me)
	require.NoError(t, err)
	assert.Equal(t, int64(-4100), info.UnconfirmedBalanceSat)
	assert.Equal(t, 1, info.UnconfirmedTxAppearance)

	utxos, err := ix.ListUnspent(me)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, models.UTXO{
		Address:       me,
		Txid:          "m1",
		Vout:          1,
		Timestamp:     fixedNow.Unix(),
		ScriptPubKey:  "76a9140188ac",
		Amount:        0.000009,
		Satoshis:      900,
		Confirmations: 0,
	}, utxos[0])
}

func TestGetAddressInfoOrdering(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(
		newTx("five", 5, nil, pay(0, 1, me)),
		newTx("one", 1, nil, pay(0, 1, me)),
		newTx("three", 3, nil, pay(0, 1, me)),
	)
	node.addMempool(
		newTx("in", 0, nil, pay(0, 1, me)),
		newTx("out", 0, spends(op("five", 0)), pay(0, 1, other)),
	)

	info, err := newTestIndex(node).GetAddressInfo(me)
	require.NoError(t, err)
	assert.Equal(t, []string{"in", "out", "one", "three", "five"}, info.Transactions)
}

func TestGetAddressInfoEmpty(t *testing.T) {
	info, err := newTestIndex(newFakeNode()).GetAddressInfo(me)
	require.NoError(t, err)

	assert.Equal(t, me, info.Address)
	assert.Zero(t, info.BalanceSat)
	assert.Zero(t, info.TxAppearances)
	assert.NotNil(t, info.Transactions)
	assert.Empty(t, info.Transactions)
}

func TestGetAddressInfoMempoolFailure(t *testing.T) {
	node := newFakeNode()
	node.mempoolErr = errors.New("connection refused")

	_, err := newTestIndex(node).GetAddressInfo(me)
	assert.True(t, errors.Is(err, node.mempoolErr))

	_, err = newTestIndex(node).ListUnspent(me)
	assert.True(t, errors.Is(err, node.mempoolErr))
}

func TestGetAddressInfoScanPolicy(t *testing.T) {
	node := newFakeNode()
	node.addConfirmed(
		newTx("theirs", 2, nil, pay(0, 100, other)),
		newTx("mine", 2, nil, pay(0, 200, me)),
	)
	node.addMempool(newTx("m1", 0, spends(op("theirs", 0), op("mine", 0)), pay(0, 290, other)))

	info, err := newTestIndex(node).GetAddressInfo(me)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.UnconfirmedBalanceSat)
	assert.Equal(t, 0, info.UnconfirmedTxAppearance)

	info, err = newTestIndex(node, WithInputScanPolicy(ScanAll)).GetAddressInfo(me)
	require.NoError(t, err)
	assert.Equal(t, int64(-200), info.UnconfirmedBalanceSat)
	assert.Equal(t, 1, info.UnconfirmedTxAppearance)
}

func TestListUnspent(t *testing.T) {
	stamp := int64(1700000000)
	c1 := newTx("c1", 5, nil, pay(0, 1000, me), pay(1, 70, other))
	c1.Time = &stamp

	node := newFakeNode()
	node.addConfirmed(
		c1,
		newTx("c2", 3, spends(op("c1", 0)), pay(0, 600, other), pay(1, 300, me)),
		newTx("c3", 1, nil, pay(0, 5, me), pay(1, 6, me)),
	)
	node.addMempool(newTx("m1", 0, spends(op("c3", 1)), pay(0, 6, other)))

	utxos, err := newTestIndex(node).ListUnspent(me)
	require.NoError(t, err)

	var got []models.Outpoint
	for _, u := range utxos {
		got = append(got, op(u.Txid, u.Vout))
		assert.Equal(t, me, u.Address)
	}
	assert.Equal(t, []models.Outpoint{op("c2", 1), op("c3", 0)}, got)
	assert.Equal(t, int64(3), utxos[0].Confirmations)
	assert.Equal(t, fixedNow.Unix(), utxos[0].Timestamp)
}

func TestListUnspentUsesTxTime(t *testing.T) {
	stamp := int64(1700000000)
	c1 := newTx("c1", 5, nil, pay(0, 1000, me))
	c1.Time = &stamp

	node := newFakeNode()
	node.addConfirmed(c1)

	utxos, err := newTestIndex(node).ListUnspent(me)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, stamp, utxos[0].Timestamp)
	assert.Equal(t, int64(1000), utxos[0].Satoshis)
	assert.InDelta(t, 0.00001, utxos[0].Amount, 1e-12)
}

func TestGetInfoAndTransactionPassThrough(t *testing.T) {
	node := newFakeNode()
	node.info = &models.NodeInfo{Version: 110000, Blocks: 42}
	node.verbose["c1"] = newTx("c1", 7, nil)

	ix := newTestIndex(node)
	info, err := ix.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Blocks)

	tx, err := ix.GetTransaction("c1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), tx.ConfirmationCount())

	_, err = ix.GetTransaction("nope")
	assert.True(t, errors.Is(err, errNotFound))
}
