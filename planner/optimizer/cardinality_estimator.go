package optimizer

import (
	"fmt"
	"math"

	stack "github.com/golang-collections/collections/stack"
	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
)

// CardinalityEstimator estimates the number of output tuples of a plan from table statistics
type CardinalityEstimator struct {
	c        *catalog.Catalog
	registry *StatsRegistry
}

func NewCardinalityEstimator(c *catalog.Catalog, registry *StatsRegistry) *CardinalityEstimator {
	return &CardinalityEstimator{c, registry}
}

func (e *CardinalityEstimator) Estimate(plan plans.Plan) (int64, error) {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		stats, err := e.statsOf(p)
		if err != nil {
			return 0, err
		}
		return stats.TotalTuples(), nil
	case *plans.FilterPlanNode:
		childCard, err := e.Estimate(p.GetChildAt(0))
		if err != nil {
			return 0, err
		}
		selectivity, err := e.EstimateSelectivity(p)
		if err != nil {
			return 0, err
		}
		return int64(math.Floor(float64(childCard) * selectivity)), nil
	case *plans.AggregationPlanNode:
		if p.GetGroupByField() == plans.NoGrouping {
			return 1, nil
		}
		return e.Estimate(p.GetChildPlan())
	case *plans.ValuesPlanNode:
		return int64(len(p.GetRawValues())), nil
	case *plans.InsertPlanNode, *plans.DeletePlanNode:
		return 1, nil
	}
	return 0, fmt.Errorf("no estimation for plan %T", plan)
}

// EstimateSelectivity multiplies the selectivities of the "column op constant"
// conjuncts of the filter predicate. Other shapes count as 1.0, as does a
// filter whose input is not a table scan.
func (e *CardinalityEstimator) EstimateSelectivity(filter *plans.FilterPlanNode) (float64, error) {
	scan := findScan(filter.GetChildAt(0))
	if scan == nil {
		return 1.0, nil
	}
	stats, err := e.statsOf(scan)
	if err != nil {
		return 0, err
	}

	selectivity := 1.0
	exps := stack.New()
	exps.Push(filter.GetPredicate())
	for exps.Len() > 0 {
		here := exps.Pop().(expression.Expression)
		switch exp := here.(type) {
		case *expression.LogicalOp:
			if exp.GetLogicalOpType() == expression.AND {
				exps.Push(exp.GetChildAt(0))
				exps.Push(exp.GetChildAt(1))
			}
		case *expression.Comparison:
			col, constant, op, ok := splitColumnConstant(exp)
			if !ok {
				continue
			}
			sel, err := stats.EstimateSelectivity(col.GetColIndex(), op, constant.GetValue())
			if err != nil {
				return 0, err
			}
			selectivity *= sel
		}
	}
	return selectivity, nil
}

func (e *CardinalityEstimator) statsOf(scan *plans.SeqScanPlanNode) (*TableStats, error) {
	name, err := e.c.GetTableName(scan.GetTableOID())
	if err != nil {
		return nil, err
	}
	stats := e.registry.GetTableStats(name)
	if stats == nil {
		return nil, fmt.Errorf("no statistics for table %s", name)
	}
	return stats, nil
}

// findScan returns the scan below a chain of filters
func findScan(plan plans.Plan) *plans.SeqScanPlanNode {
	for plan != nil {
		switch p := plan.(type) {
		case *plans.SeqScanPlanNode:
			return p
		case *plans.FilterPlanNode:
			plan = p.GetChildAt(0)
		default:
			return nil
		}
	}
	return nil
}

// splitColumnConstant normalizes "constant op column" into "column op' constant"
func splitColumnConstant(cmp *expression.Comparison) (*expression.ColumnValue, *expression.ConstantValue, expression.ComparisonType, bool) {
	if col, ok := cmp.GetLeftSide().(*expression.ColumnValue); ok {
		if constant, ok := cmp.GetRightSide().(*expression.ConstantValue); ok {
			return col, constant, cmp.GetComparisonType(), true
		}
	}
	if constant, ok := cmp.GetLeftSide().(*expression.ConstantValue); ok {
		if col, ok := cmp.GetRightSide().(*expression.ColumnValue); ok {
			return col, constant, cmp.GetComparisonType().Swap(), true
		}
	}
	return nil, nil, cmp.GetComparisonType(), false
}
