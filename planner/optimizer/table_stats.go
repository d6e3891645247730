package optimizer

import (
	"fmt"
	"math"

	pair "github.com/notEpsilon/go-pair"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// DefaultStatisticsConfig is used when no statistics config is passed
func DefaultStatisticsConfig() *common.StatisticsConfig {
	return &common.StatisticsConfig{
		HistogramBins:  common.NumHistBins,
		IOCostPerPage:  common.IOCostPerPage,
		BoundaryPolicy: common.BoundaryPolicyStrict,
	}
}

/**
 * TableStats keeps one histogram per column of a table.
 * It is built by two full scans: the first finds (min, max) of every
 * integer column, the second fills the histograms.
 */
type TableStats struct {
	tableID       types.TableID
	schema        *schema.Schema
	ioCostPerPage int
	numPages      int
	totalTuples   int64
	intHists      []*IntHistogram
	stringHists   []*StringHistogram
	// field index -> index into intHists or stringHists by the field type
	histIndices []int
}

func NewTableStats(hf *access.HeapFile, txn *access.Transaction, conf *common.StatisticsConfig) (*TableStats, error) {
	if conf == nil {
		conf = DefaultStatisticsConfig()
	}
	schema_ := hf.GetSchema()
	stats := &TableStats{
		tableID:       hf.GetID(),
		schema:        schema_,
		ioCostPerPage: conf.IOCostPerPage,
		numPages:      hf.NumPages(),
		intHists:      make([]*IntHistogram, 0),
		stringHists:   make([]*StringHistogram, 0),
		histIndices:   make([]int, schema_.GetColumnCount()),
	}

	// pass 1: (min, max) of each integer column. string columns use a fixed domain.
	minMax := make([]*pair.Pair[int32, int32], schema_.GetColumnCount())
	err := scanTable(hf, txn, func(t *tuple.Tuple) {
		for i, col := range schema_.GetColumns() {
			if col.GetType() != types.Integer {
				continue
			}
			v := t.GetValue(uint32(i)).ToInteger()
			if minMax[i] == nil {
				minMax[i] = &pair.Pair[int32, int32]{First: v, Second: v}
				continue
			}
			if v < minMax[i].First {
				minMax[i].First = v
			}
			if v > minMax[i].Second {
				minMax[i].Second = v
			}
		}
		stats.totalTuples++
	})
	if err != nil {
		return nil, err
	}

	for i, col := range schema_.GetColumns() {
		if col.GetType() == types.Integer {
			var min, max int32
			if minMax[i] != nil {
				min, max = minMax[i].First, minMax[i].Second
			}
			stats.histIndices[i] = len(stats.intHists)
			stats.intHists = append(stats.intHists, NewIntHistogramWithPolicy(conf.HistogramBins, min, max, conf.BoundaryPolicy))
		} else {
			stats.histIndices[i] = len(stats.stringHists)
			stats.stringHists = append(stats.stringHists, NewStringHistogram(conf.HistogramBins, conf.BoundaryPolicy))
		}
	}

	// pass 2
	err = scanTable(hf, txn, func(t *tuple.Tuple) {
		for i, col := range schema_.GetColumns() {
			if col.GetType() == types.Integer {
				stats.intHists[stats.histIndices[i]].AddValue(t.GetValue(uint32(i)).ToInteger())
			} else {
				stats.stringHists[stats.histIndices[i]].AddValue(t.GetValue(uint32(i)).ToVarchar())
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanTable(hf *access.HeapFile, txn *access.Transaction, visit func(t *tuple.Tuple)) error {
	it := hf.Iterator(txn)
	if err := it.Open(); err != nil {
		return err
	}
	defer it.Close()
	for {
		hasNext, err := it.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}
		t, err := it.Next()
		if err != nil {
			return err
		}
		visit(t)
	}
}

// EstimateSelectivity estimates the fraction of tuples satisfying "field op constant"
func (s *TableStats) EstimateSelectivity(field uint32, op expression.ComparisonType, constant types.Value) (float64, error) {
	if field >= s.schema.GetColumnCount() {
		return 0, fmt.Errorf("field %d of %d: %w", field, s.schema.GetColumnCount(), errors.ErrInvalidField)
	}
	colType := s.schema.GetColumn(field).GetType()
	if colType != constant.ValueType() {
		return 0, fmt.Errorf("compare %v field with %v: %w", colType, constant.ValueType(), errors.ErrSchemaMismatch)
	}
	if colType == types.Integer {
		return s.intHists[s.histIndices[field]].EstimateSelectivity(op, constant.ToInteger()), nil
	}
	return s.stringHists[s.histIndices[field]].EstimateSelectivity(op, constant.ToVarchar()), nil
}

// EstimateScanCost is the cost of reading every page once. A partly filled page costs a full page.
func (s *TableStats) EstimateScanCost() float64 {
	return float64(s.numPages) * float64(s.ioCostPerPage)
}

// EstimateTableCardinality returns the number of tuples left after a predicate of selectivityFactor
func (s *TableStats) EstimateTableCardinality(selectivityFactor float64) int64 {
	return int64(math.Floor(float64(s.totalTuples) * selectivityFactor))
}

func (s *TableStats) TotalTuples() int64 {
	return s.totalTuples
}

func (s *TableStats) NumPages() int {
	return s.numPages
}

func (s *TableStats) GetTableID() types.TableID {
	return s.tableID
}
