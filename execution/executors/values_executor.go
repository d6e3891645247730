package executors

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

// NewValuesExecutor materializes the raw rows of the plan. A row whose
// arity or types disagree with the plan schema fails with ErrSchemaMismatch
// or ErrInvalidField.
func NewValuesExecutor(plan *plans.ValuesPlanNode) (*TupleIterator, error) {
	schema_ := plan.OutputSchema()
	tuples := make([]*tuple.Tuple, 0, len(plan.GetRawValues()))
	for i, row := range plan.GetRawValues() {
		tuple_ := tuple.NewTuple(schema_)
		for j, val := range row {
			if err := tuple_.SetValue(uint32(j), val); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		for j := uint32(0); j < schema_.GetColumnCount(); j++ {
			if !tuple_.IsSet(j) {
				return nil, fmt.Errorf("row %d: field %d is missing: %w", i, j, errors.ErrSchemaMismatch)
			}
		}
		tuples = append(tuples, tuple_)
	}
	return NewTupleIterator(schema_, tuples), nil
}
