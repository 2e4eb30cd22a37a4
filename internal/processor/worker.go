package processor

import (
	"context"
	"fmt"
	"sync"

	"addrscan/pkg/models"

	log "github.com/sirupsen/logrus"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AddressIndex is the query WorkerPool fans out.
type AddressIndex interface {
	GetAddressInfo(address string) (*models.AddressInfo, error)
}

type WorkerPool struct {
	index      AddressIndex
	numWorkers int
	progress   chan ProgressUpdate
}

type ProgressUpdate struct {
	Address  string
	Info     *models.AddressInfo
	Status   string
	Error    error
	DebugMsg string
}

// Result pairs an address with its outcome. Exactly one of Info and Err is
// set once ProcessAddresses returns.
type Result struct {
	Address string
	Info    *models.AddressInfo
	Err     error
}

func NewWorkerPool(index AddressIndex, numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool{
		index:      index,
		numWorkers: numWorkers,
		progress:   make(chan ProgressUpdate, numWorkers*2),
	}
}

// ProcessAddresses queries every address and returns the results in input
// order. It closes the progress channel when done, so a pool serves a
// single batch. Once ctx is cancelled no new address is started and the
// ones never started carry the context error.
func (wp *WorkerPool) ProcessAddresses(ctx context.Context, addresses []string) ([]Result, error) {
	defer close(wp.progress)

	results := make([]Result, len(addresses))
	for i, address := range addresses {
		results[i].Address = address
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go wp.worker(ctx, jobs, results, &wg)
	}

	var err error
dispatch:
	for i := range addresses {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		for i := range results {
			if results[i].Info == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
		log.WithError(err).Warn("address batch interrupted")
	}
	return results, err
}

func (wp *WorkerPool) worker(ctx context.Context, jobs <-chan int, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case i, ok := <-jobs:
			if !ok {
				return
			}
			wp.processAddress(ctx, &results[i])

		case <-ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processAddress(ctx context.Context, res *Result) {
	wp.emit(ctx, ProgressUpdate{
		Address:  res.Address,
		Status:   StatusProcessing,
		DebugMsg: fmt.Sprintf("Querying %s", res.Address),
	})

	info, err := wp.index.GetAddressInfo(res.Address)
	if err != nil {
		res.Err = err
		log.WithError(err).WithField("address", res.Address).Debug("address query failed")
		wp.emit(ctx, ProgressUpdate{
			Address: res.Address,
			Status:  StatusFailed,
			Error:   err,
		})
		return
	}

	res.Info = info
	wp.emit(ctx, ProgressUpdate{
		Address:  res.Address,
		Info:     info,
		Status:   StatusCompleted,
		DebugMsg: fmt.Sprintf("Completed %s with %d transactions", res.Address, len(info.Transactions)),
	})
}

// emit drops the update when nobody is listening anymore.
func (wp *WorkerPool) emit(ctx context.Context, update ProgressUpdate) {
	select {
	case wp.progress <- update:
	case <-ctx.Done():
	}
}

func (wp *WorkerPool) GetProgressChannel() <-chan ProgressUpdate {
	return wp.progress
}
