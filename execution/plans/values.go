package plans

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// ValuesPlanNode produces the rows it holds, in order
type ValuesPlanNode struct {
	*AbstractPlanNode
	rawValues [][]types.Value
}

func NewValuesPlanNode(schema_ *schema.Schema, rawValues [][]types.Value) Plan {
	return &ValuesPlanNode{&AbstractPlanNode{schema_, nil}, rawValues}
}

// GetRawValues returns the rows to be produced
func (p *ValuesPlanNode) GetRawValues() [][]types.Value {
	return p.rawValues
}

func (p *ValuesPlanNode) GetType() PlanType {
	return Values
}

func (p *ValuesPlanNode) GetDebugStr() string {
	return fmt.Sprintf("ValuesPlanNode [ rows: %d ]", len(p.rawValues))
}
