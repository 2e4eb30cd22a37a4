package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"addrscan/internal/processor"
	"addrscan/internal/ui"
	"addrscan/pkg/models"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info ADDRESS...",
	Short: "Balances and transaction ids of one or more addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		info, err := index.GetAddressInfo(args[0])
		if err != nil {
			return err
		}
		return render(out, cfg.Output, info, func() string { return ui.RenderAddressInfo(info) })
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := runBatch(ctx, args)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	infos := make([]*models.AddressInfo, 0, len(results))
	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.WithError(res.Err).WithField("address", res.Address).Error("address query failed")
			continue
		}
		infos = append(infos, res.Info)
	}

	if err := render(out, cfg.Output, infos, func() string {
		views := make([]string, 0, len(infos))
		for _, info := range infos {
			views = append(views, ui.RenderAddressInfo(info))
		}
		return strings.Join(views, "\n\n")
	}); err != nil {
		return err
	}

	if failed > 0 {
		return errors.Newf("%d of %d addresses failed", failed, len(args))
	}
	return nil
}

// runBatch queries addresses on the worker pool while the progress view
// follows it. Leaving the view early cancels the remaining queries.
func runBatch(ctx context.Context, addresses []string) ([]processor.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wp := processor.NewWorkerPool(index, cfg.Workers)

	var (
		results  []processor.Result
		batchErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, batchErr = wp.ProcessAddresses(ctx, addresses)
	}()

	uiErr := ui.RunProgressUI(ctx, len(addresses), wp.GetProgressChannel())
	cancel()
	<-done

	if uiErr != nil && !errors.Is(uiErr, context.Canceled) {
		return results, errors.Wrap(uiErr, "progress display failed")
	}
	return results, batchErr
}
