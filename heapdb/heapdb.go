package heapdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/concurrency"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/executors"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/planner/optimizer"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
	"github.com/ryogrid/SimpleHeapDB/storage/disk"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// HeapDB wires the buffer pool, catalog, executors and statistics of one database
type HeapDB struct {
	cfg                 *common.Config
	dataDir             string
	removeDataDir       bool
	diskManagers        map[string]disk.DiskManager
	bpm                 *buffer.BufferPoolManager
	catalog_            *catalog.Catalog
	transaction_manager *concurrency.TransactionManager
	checkpoint_manager  *concurrency.CheckpointManager
	exec_engine_        *executors.ExecutionEngine
	registry            *optimizer.StatsRegistry
	estimator           *optimizer.CardinalityEstimator
	updater             *concurrency.StatisticsUpdater
}

// NewHeapDB opens the database described by cfg. Tables found in the data
// directory are registered again. A nil cfg means DefaultConfig().
func NewHeapDB(cfg *common.Config) (*HeapDB, error) {
	if cfg == nil {
		cfg = common.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := common.SetLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	db := &HeapDB{cfg: cfg, diskManagers: make(map[string]disk.DiskManager)}
	if !cfg.Storage.OnMemory {
		db.dataDir = cfg.Storage.DataDir
		if db.dataDir == "" {
			dir, err := os.MkdirTemp("", "heapdb")
			if err != nil {
				return nil, fmt.Errorf("create data dir: %v: %w", err, errors.ErrStorageIOFailure)
			}
			db.dataDir = dir
			db.removeDataDir = true
		} else if err := os.MkdirAll(db.dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %v: %w", db.dataDir, err, errors.ErrStorageIOFailure)
		}
	}

	db.bpm = buffer.NewBufferPoolManager(uint32(cfg.BufferPool.Frames), cfg.Storage.PageSize, nil)
	c, err := catalog.BootstrapCatalog(db.bpm, db.openFile)
	if err != nil {
		db.shutdownDisks()
		return nil, err
	}
	db.catalog_ = c
	db.transaction_manager = concurrency.NewTransactionManager(db.bpm)
	db.checkpoint_manager = concurrency.NewCheckpointManager(db.transaction_manager, db.bpm)
	db.exec_engine_ = &executors.ExecutionEngine{}

	statsConf := cfg.Statistics
	db.registry = optimizer.NewStatsRegistry(&statsConf)
	db.estimator = optimizer.NewCardinalityEstimator(c, db.registry)
	interval := time.Duration(cfg.Statistics.UpdateIntervalSec) * time.Second
	db.updater = concurrency.NewStatisticsUpdater(db.transaction_manager, c, db.registry, interval)
	db.updater.Start()

	common.ShPrintf(common.INFO, "HeapDB: opened (data dir %q, on memory %v, %d frames)\n", db.dataDir, cfg.Storage.OnMemory, cfg.BufferPool.Frames)
	return db, nil
}

// openFile is the catalog's DiskManagerFactory. A table keeps one disk manager for the life of the db.
func (db *HeapDB) openFile(tableName string) (disk.DiskManager, error) {
	if dm, ok := db.diskManagers[tableName]; ok {
		return dm, nil
	}
	var dm disk.DiskManager
	if db.cfg.Storage.OnMemory {
		dm = disk.NewVirtualDiskManagerImpl(tableName)
	} else {
		var err error
		dm, err = disk.NewDiskManagerImpl(filepath.Join(db.dataDir, tableName+".db"))
		if err != nil {
			return nil, err
		}
	}
	db.diskManagers[tableName] = dm
	return dm, nil
}

// CreateTable creates and persists a table in its own transaction
func (db *HeapDB) CreateTable(name string, schema_ *schema.Schema) (*catalog.TableMetadata, error) {
	txn := db.transaction_manager.Begin(nil)
	tableMetadata, err := db.catalog_.CreateTable(name, schema_, txn)
	if err != nil {
		if abortErr := db.transaction_manager.Abort(txn); abortErr != nil {
			common.ShPrintf(common.ERROR, "HeapDB::CreateTable: abort failed: %v\n", abortErr)
		}
		return nil, err
	}
	if err = db.transaction_manager.Commit(txn); err != nil {
		return nil, err
	}
	return tableMetadata, nil
}

// Execute runs plan in a new transaction. The transaction is committed when
// the plan completes and aborted when it fails.
func (db *HeapDB) Execute(plan plans.Plan) ([]*tuple.Tuple, error) {
	txn := db.transaction_manager.Begin(nil)
	context := executors.NewExecutorContext(db.catalog_, db.bpm, txn)
	result, err := db.exec_engine_.Execute(plan, context)

	if err == nil && txn.GetState() == access.ABORTED {
		err = errors.ErrTransactionAborted
	}
	if err != nil {
		if abortErr := db.transaction_manager.Abort(txn); abortErr != nil {
			common.ShPrintf(common.ERROR, "HeapDB::Execute: abort failed: %v\n", abortErr)
		}
		return nil, err
	}
	if err = db.transaction_manager.Commit(txn); err != nil {
		return nil, err
	}
	return result, nil
}

// ComputeStatistics rebuilds the statistics of every table now
func (db *HeapDB) ComputeStatistics() error {
	return db.updater.UpdateAllTablesStatistics()
}

// GetTableStats returns nil until statistics of tableName are computed
func (db *HeapDB) GetTableStats(tableName string) *optimizer.TableStats {
	return db.registry.GetTableStats(tableName)
}

func (db *HeapDB) EstimateCardinality(plan plans.Plan) (int64, error) {
	return db.estimator.Estimate(plan)
}

func (db *HeapDB) GetCatalog() *catalog.Catalog {
	return db.catalog_
}

func (db *HeapDB) GetStatsRegistry() *optimizer.StatsRegistry {
	return db.registry
}

// Checkpoint waits for the running transactions and writes every cached page
func (db *HeapDB) Checkpoint() error {
	defer db.checkpoint_manager.EndCheckpoint()
	return db.checkpoint_manager.BeginCheckpoint()
}

// Shutdown stops the updater, writes cached pages and releases the table files.
// A data directory created by NewHeapDB is removed.
func (db *HeapDB) Shutdown() error {
	db.updater.Stop()
	err := db.Checkpoint()
	db.shutdownDisks()
	if db.removeDataDir {
		if rmErr := os.RemoveAll(db.dataDir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove data dir: %v: %w", rmErr, errors.ErrStorageIOFailure)
		}
	}
	return err
}

func (db *HeapDB) shutdownDisks() {
	for _, dm := range db.diskManagers {
		dm.ShutDown()
	}
}

// ConvTupleListToValues returns the values of each result tuple in schema order
func ConvTupleListToValues(schema_ *schema.Schema, result []*tuple.Tuple) [][]types.Value {
	retVals := make([][]types.Value, 0, len(result))
	for _, tuple_ := range result {
		rowVals := make([]types.Value, 0, schema_.GetColumnCount())
		for idx := uint32(0); idx < schema_.GetColumnCount(); idx++ {
			rowVals = append(rowVals, tuple_.GetValue(idx))
		}
		retVals = append(retVals, rowVals)
	}
	return retVals
}
