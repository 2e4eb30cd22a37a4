package cmd

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var errPubKeyNotFound = errors.New("public key not found")

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey ADDRESS",
	Short: "Recover the public key of an address that has spent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, found, err := index.RecoverPubKey(args[0])
		if err != nil {
			return err
		}
		return writePubKey(cmd.OutOrStdout(), cfg.Output, args[0], key, found)
	},
}

type pubKeyResult struct {
	Address string  `json:"address"`
	PubKey  *string `json:"pubkey"`
}

// writePubKey prints the recovered key, or "not found" (a null pubkey in
// JSON) followed by errPubKeyNotFound.
func writePubKey(w io.Writer, format, address, key string, found bool) error {
	result := pubKeyResult{Address: address}
	text := "not found"
	if found {
		result.PubKey = &key
		text = key
	}

	if err := render(w, format, result, func() string { return text }); err != nil {
		return err
	}
	if !found {
		return errPubKeyNotFound
	}
	return nil
}
