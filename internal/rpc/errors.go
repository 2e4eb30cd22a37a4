package rpc

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/cockroachdb/errors"
)

var (
	// ErrTransport marks connection, timeout and HTTP level failures.
	ErrTransport = errors.New("rpc transport failure")
	// ErrProtocol marks calls the node answered with a JSON-RPC error object.
	ErrProtocol = errors.New("rpc protocol error")
	// ErrData marks responses that are missing required fields or are malformed.
	ErrData = errors.New("malformed rpc data")
)

func classify(method string, err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return errors.Mark(errors.Wrapf(err, "%s", method), ErrProtocol)
	}
	return errors.Mark(errors.Wrapf(err, "%s", method), ErrTransport)
}

func dataErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrData)
}

func wrapData(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrData)
}

func isNoTxInfo(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo
}
