package concurrency

import (
	"sync"
	"time"

	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/planner/optimizer"
)

// StatisticsUpdater recomputes the statistics of every table on an interval
type StatisticsUpdater struct {
	transaction_manager *TransactionManager
	c                   *catalog.Catalog
	registry            *optimizer.StatsRegistry
	interval            time.Duration
	stopCh              chan struct{}
	wg                  sync.WaitGroup
	// updater thread works when this flag is true
	isUpdaterActive bool
}

func NewStatisticsUpdater(
	transaction_manager *TransactionManager, c *catalog.Catalog, registry *optimizer.StatsRegistry, interval time.Duration) *StatisticsUpdater {

	return &StatisticsUpdater{transaction_manager: transaction_manager, c: c, registry: registry, interval: interval}
}

// Start runs UpdateAllTablesStatistics every interval until Stop.
// It does nothing when the interval is not positive or the thread is already running.
func (updater *StatisticsUpdater) Start() {
	if updater.interval <= 0 || updater.isUpdaterActive {
		return
	}
	updater.isUpdaterActive = true
	updater.stopCh = make(chan struct{})
	updater.wg.Add(1)
	go func(stopCh chan struct{}) {
		defer updater.wg.Done()
		ticker := time.NewTicker(updater.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				common.ShPrintf(common.INFO, "StatisticsUpdaterTh: start updating.\n")
				if err := updater.UpdateAllTablesStatistics(); err != nil {
					common.ShPrintf(common.WARN, "StatisticsUpdaterTh: %v\n", err)
					continue
				}
				common.ShPrintf(common.INFO, "StatisticsUpdaterTh: finish updating.\n")
			}
		}
	}(updater.stopCh)
}

// UpdateAllTablesStatistics scans every table while transactions are blocked,
// so the scan sees committed pages only and no writer touches them meanwhile.
// When a scan fails the previous statistics stay registered.
func (updater *StatisticsUpdater) UpdateAllTablesStatistics() error {
	updater.transaction_manager.BlockAllTransactions()
	defer updater.transaction_manager.ResumeTransactions()
	return updater.registry.ComputeStatistics(updater.c, nil)
}

// Stop waits for a running update to finish
func (updater *StatisticsUpdater) Stop() {
	if !updater.isUpdaterActive {
		return
	}
	updater.isUpdaterActive = false
	close(updater.stopCh)
	updater.wg.Wait()
}

func (updater *StatisticsUpdater) IsUpdaterActive() bool {
	return updater.isUpdaterActive
}
