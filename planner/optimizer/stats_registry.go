package optimizer

import (
	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
)

// StatsRegistry holds the TableStats of every table by table name.
// It is passed explicitly to whatever needs statistics.
type StatsRegistry struct {
	statsMap map[string]*TableStats
	conf     *common.StatisticsConfig
	latch    common.ReaderWriterLatch
}

func NewStatsRegistry(conf *common.StatisticsConfig) *StatsRegistry {
	if conf == nil {
		conf = DefaultStatisticsConfig()
	}
	return &StatsRegistry{make(map[string]*TableStats), conf, common.NewRWLatch()}
}

// GetTableStats returns nil when no statistics are registered for tableName
func (r *StatsRegistry) GetTableStats(tableName string) *TableStats {
	r.latch.RLock()
	defer r.latch.RUnlock()
	return r.statsMap[tableName]
}

func (r *StatsRegistry) SetTableStats(tableName string, stats *TableStats) {
	r.latch.WLock()
	defer r.latch.WUnlock()
	r.statsMap[tableName] = stats
}

// SetStatsMap replaces every registered statistics
func (r *StatsRegistry) SetStatsMap(statsMap map[string]*TableStats) {
	newMap := make(map[string]*TableStats, len(statsMap))
	for name, stats := range statsMap {
		newMap[name] = stats
	}
	r.latch.WLock()
	defer r.latch.WUnlock()
	r.statsMap = newMap
}

// GetStatsMap returns a copy
func (r *StatsRegistry) GetStatsMap() map[string]*TableStats {
	r.latch.RLock()
	defer r.latch.RUnlock()
	ret := make(map[string]*TableStats, len(r.statsMap))
	for name, stats := range r.statsMap {
		ret[name] = stats
	}
	return ret
}

// ComputeStatistics rebuilds the statistics of every table of c and swaps them in at once.
// On error the registered statistics are left as they were.
func (r *StatsRegistry) ComputeStatistics(c *catalog.Catalog, txn *access.Transaction) error {
	common.ShPrintf(common.INFO, "Computing table stats.\n")
	newMap := make(map[string]*TableStats)
	for _, tableMetadata := range c.GetAllTables() {
		stats, err := NewTableStats(tableMetadata.Table(), txn, r.conf)
		if err != nil {
			return err
		}
		newMap[tableMetadata.Name()] = stats
	}
	r.latch.WLock()
	r.statsMap = newMap
	r.latch.WUnlock()
	common.ShPrintf(common.INFO, "Done. statistics of %d tables.\n", len(newMap))
	return nil
}
