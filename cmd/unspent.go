package cmd

import (
	"addrscan/internal/ui"

	"github.com/spf13/cobra"
)

var unspentCmd = &cobra.Command{
	Use:   "unspent ADDRESS",
	Short: "Unspent outputs of an address, mempool included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		utxos, err := index.ListUnspent(args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output, utxos, func() string {
			return ui.RenderUTXOs(args[0], utxos)
		})
	},
}
