package cmd

import (
	"addrscan/internal/config"
	"addrscan/internal/ui"

	"github.com/spf13/cobra"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Show the node's getinfo summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := index.GetInfo()
		if err != nil {
			return err
		}
		// JSON output passes the node's reply through untouched.
		var v interface{} = info
		if cfg.Output == config.OutputJSON && len(info.Raw) > 0 {
			v = info.Raw
		}
		return render(cmd.OutOrStdout(), cfg.Output, v, func() string { return ui.RenderNodeInfo(info) })
	},
}
