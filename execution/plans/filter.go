package plans

import "github.com/ryogrid/SimpleHeapDB/execution/expression"

// do filtering according to the predicate for the tuples of the child plan

type FilterPlanNode struct {
	*AbstractPlanNode
	predicate expression.Expression
}

func NewFilterPlanNode(child Plan, predicate expression.Expression) Plan {
	childOutSchema := child.OutputSchema()
	return &FilterPlanNode{&AbstractPlanNode{childOutSchema, []Plan{child}}, predicate}
}

func (p *FilterPlanNode) GetType() PlanType {
	return Filter
}

func (p *FilterPlanNode) GetPredicate() expression.Expression {
	return p.predicate
}

func (p *FilterPlanNode) GetDebugStr() string {
	return "FilterPlanNode [ " + p.predicate.String() + " ]"
}
