package plans

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// /** AggregationType enumerates all the possible aggregation functions in our system. */
type AggregationType int32

const (
	COUNT_AGGREGATE AggregationType = iota
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
	AVG_AGGREGATE
)

func (a AggregationType) String() string {
	switch a {
	case COUNT_AGGREGATE:
		return "COUNT"
	case SUM_AGGREGATE:
		return "SUM"
	case MIN_AGGREGATE:
		return "MIN"
	case MAX_AGGREGATE:
		return "MAX"
	case AVG_AGGREGATE:
		return "AVG"
	}
	return "UNKNOWN"
}

// NoGrouping is passed as the group-by field of an ungrouped aggregation
const NoGrouping int32 = -1

/**
 * AggregationPlanNode computes one aggregate over a column of its only child,
 * optionally grouped by another column.
 * Output is (groupVal, aggregateVal) or (aggregateVal) without grouping.
 */
type AggregationPlanNode struct {
	*AbstractPlanNode
	groupByField int32
	aggField     uint32
	aggType      AggregationType
}

func NewAggregationPlanNode(child Plan, groupByField int32, aggField uint32, aggType AggregationType) Plan {
	return &AggregationPlanNode{&AbstractPlanNode{MakeAggregateOutputSchema(child.OutputSchema(), groupByField), []Plan{child}}, groupByField, aggField, aggType}
}

// MakeAggregateOutputSchema returns the output schema of an aggregation over input
func MakeAggregateOutputSchema(input *schema.Schema, groupByField int32) *schema.Schema {
	aggColumn := column.NewColumn("aggregateVal", types.Integer)
	if groupByField == NoGrouping {
		return schema.NewSchema([]*column.Column{aggColumn})
	}
	groupColumn := column.NewColumn("groupVal", input.GetColumn(uint32(groupByField)).GetType())
	return schema.NewSchema([]*column.Column{groupColumn, aggColumn})
}

func (p *AggregationPlanNode) GetChildPlan() Plan {
	return p.GetChildAt(0)
}

func (p *AggregationPlanNode) GetGroupByField() int32 {
	return p.groupByField
}

func (p *AggregationPlanNode) GetAggregateField() uint32 {
	return p.aggField
}

func (p *AggregationPlanNode) GetAggregateType() AggregationType {
	return p.aggType
}

func (p *AggregationPlanNode) GetType() PlanType {
	return Aggregation
}

func (p *AggregationPlanNode) GetDebugStr() string {
	return fmt.Sprintf("AggregationPlanNode [ %s(#%d) group by: %d ]", p.aggType, p.aggField, p.groupByField)
}
