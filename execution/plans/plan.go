package plans

import "github.com/ryogrid/SimpleHeapDB/storage/table/schema"

type PlanType int

const (
	SeqScan PlanType = iota
	Filter
	Insert
	Delete
	Aggregation
	Values
)

func (p PlanType) String() string {
	switch p {
	case SeqScan:
		return "SeqScan"
	case Filter:
		return "Filter"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Aggregation:
		return "Aggregation"
	case Values:
		return "Values"
	}
	return "Unknown"
}

type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
	GetDebugStr() string
}

type AbstractPlanNode struct {
	/**
	 * The schema for the output of this plan node. In the volcano model, every plan node will spit out tuples,
	 * and this tells you what schema this plan node's tuples will have.
	 */
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	if childIndex >= uint32(len(p.children)) {
		return nil
	}
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan {
	return p.children
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema {
	return p.outputSchema
}
