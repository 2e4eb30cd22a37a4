package cmd

import (
	"addrscan/internal/ui"

	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx TXID",
	Short: "Show a transaction as the node's wallet reports it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := index.GetTransaction(args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output, tx, func() string { return ui.RenderTransaction(tx) })
	},
}
