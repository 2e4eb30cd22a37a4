package addrindex

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cockroachdb/errors"
)

// Only the pay-to-pubkey-hash version byte is needed to derive addresses.
var (
	MainNetParams = chaincfg.Params{
		Name:             "mainnet",
		PubKeyHashAddrID: 0x37,
	}
	TestNetParams = chaincfg.Params{
		Name:             "testnet",
		PubKeyHashAddrID: 0x3f,
	}
)

func NetworkParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "", MainNetParams.Name:
		return &MainNetParams, nil
	case TestNetParams.Name:
		return &TestNetParams, nil
	}
	return nil, errors.Newf("unknown network %q", name)
}
