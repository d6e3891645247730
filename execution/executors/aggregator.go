package executors

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/container/hash"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// Aggregator folds tuples into per-group running state. Raw input is never kept.
type Aggregator interface {
	MergeTupleIntoGroup(t *tuple.Tuple) error
	// Iterator materializes one (groupVal, aggregateVal) or (aggregateVal)
	// tuple per group, groups in first-seen order
	Iterator() *TupleIterator
}

// aggregateGroup is the running state of one group
type aggregateGroup struct {
	key   *types.Value // nil without grouping
	value int32
	count int32 // AVG only
}

/**
 * A simplified hash table from group key to running state.
 * Keys are bucketed by their murmur3 hash and compared on collision.
 */
type aggregationHashTable struct {
	buckets map[uint32][]*aggregateGroup
	order   []*aggregateGroup
}

func newAggregationHashTable() *aggregationHashTable {
	return &aggregationHashTable{make(map[uint32][]*aggregateGroup), make([]*aggregateGroup, 0)}
}

func (ht *aggregationHashTable) lookup(key *types.Value, seed int32) *aggregateGroup {
	var hashval uint32
	if key != nil {
		hashval = hash.HashValue(key)
	}
	for _, group := range ht.buckets[hashval] {
		if (group.key == nil && key == nil) || (group.key != nil && key != nil && group.key.CompareEquals(*key)) {
			return group
		}
	}
	group := &aggregateGroup{key: key, value: seed}
	ht.buckets[hashval] = append(ht.buckets[hashval], group)
	ht.order = append(ht.order, group)
	return group
}

// simpleAggregator computes one aggregate of an integer field, or COUNT of any field
type simpleAggregator struct {
	groupByField int32
	aggField     uint32
	aggType      plans.AggregationType
	outSchema    *schema.Schema
	ht           *aggregationHashTable
}

// NewAggregator returns the aggregator of aggType over aggField of input,
// grouped by groupByField or plans.NoGrouping.
// String fields support COUNT only.
func NewAggregator(input *schema.Schema, groupByField int32, aggField uint32, aggType plans.AggregationType) (Aggregator, error) {
	if aggField >= input.GetColumnCount() {
		return nil, fmt.Errorf("aggregate field %d of %d: %w", aggField, input.GetColumnCount(), errors.ErrInvalidField)
	}
	if groupByField != plans.NoGrouping && (groupByField < 0 || uint32(groupByField) >= input.GetColumnCount()) {
		return nil, fmt.Errorf("group by field %d of %d: %w", groupByField, input.GetColumnCount(), errors.ErrInvalidField)
	}
	switch aggType {
	case plans.COUNT_AGGREGATE, plans.SUM_AGGREGATE, plans.MIN_AGGREGATE, plans.MAX_AGGREGATE, plans.AVG_AGGREGATE:
	default:
		return nil, fmt.Errorf("aggregate %v: %w", aggType, errors.ErrUnsupportedAggregate)
	}
	if input.GetColumn(aggField).GetType() != types.Integer && aggType != plans.COUNT_AGGREGATE {
		return nil, fmt.Errorf("%v over %v: %w", aggType, input.GetColumn(aggField).GetType(), errors.ErrUnsupportedAggregate)
	}
	return &simpleAggregator{
		groupByField: groupByField,
		aggField:     aggField,
		aggType:      aggType,
		outSchema:    plans.MakeAggregateOutputSchema(input, groupByField),
		ht:           newAggregationHashTable(),
	}, nil
}

/** @return the initial aggregrate value of a new group */
func (a *simpleAggregator) initialValue() int32 {
	switch a.aggType {
	case plans.MIN_AGGREGATE:
		// Min starts at INT_MAX.
		return types.MaxInteger().ToInteger()
	case plans.MAX_AGGREGATE:
		// Max starts at INT_MIN.
		return types.MinInteger().ToInteger()
	}
	// count, sum and avg start at zero.
	return 0
}

func (a *simpleAggregator) MergeTupleIntoGroup(t *tuple.Tuple) error {
	var key *types.Value
	if a.groupByField != plans.NoGrouping {
		if !t.IsSet(uint32(a.groupByField)) {
			return fmt.Errorf("group by field %d: %w", a.groupByField, errors.ErrInvalidField)
		}
		val := t.GetValue(uint32(a.groupByField))
		key = &val
	}
	if !t.IsSet(a.aggField) {
		return fmt.Errorf("aggregate field %d: %w", a.aggField, errors.ErrInvalidField)
	}
	group := a.ht.lookup(key, a.initialValue())

	if a.aggType == plans.COUNT_AGGREGATE {
		group.value++
		return nil
	}
	val := t.GetValue(a.aggField)
	if val.ValueType() != types.Integer {
		return fmt.Errorf("%v over %v: %w", a.aggType, val.ValueType(), errors.ErrSchemaMismatch)
	}
	v := val.ToInteger()
	switch a.aggType {
	case plans.SUM_AGGREGATE:
		group.value += v
	case plans.AVG_AGGREGATE:
		group.value += v
		group.count++
	case plans.MIN_AGGREGATE:
		if v < group.value {
			group.value = v
		}
	case plans.MAX_AGGREGATE:
		if v > group.value {
			group.value = v
		}
	}
	return nil
}

func (a *simpleAggregator) Iterator() *TupleIterator {
	groups := a.ht.order
	if len(groups) == 0 && a.groupByField == plans.NoGrouping {
		// ungrouped aggregation always yields one tuple
		groups = []*aggregateGroup{{value: a.initialValue()}}
	}
	tuples := make([]*tuple.Tuple, 0, len(groups))
	for _, group := range groups {
		aggregateVal := group.value
		if a.aggType == plans.AVG_AGGREGATE {
			aggregateVal = 0
			if group.count > 0 {
				aggregateVal = group.value / group.count
			}
		}
		values := make([]types.Value, 0, 2)
		if a.groupByField != plans.NoGrouping {
			values = append(values, *group.key)
		}
		values = append(values, types.NewInteger(aggregateVal))
		tuples = append(tuples, tuple.NewTupleFromSchema(values, a.outSchema))
	}
	return NewTupleIterator(a.outSchema, tuples)
}
