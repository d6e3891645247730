package plans

/**
 * DeletePlanNode deletes every tuple its child produces, located by RID.
 */
type DeletePlanNode struct {
	*AbstractPlanNode
}

func NewDeletePlanNode(child Plan) Plan {
	return &DeletePlanNode{&AbstractPlanNode{makeCountOutputSchema("Deleted"), []Plan{child}}}
}

func (p *DeletePlanNode) GetType() PlanType {
	return Delete
}

func (p *DeletePlanNode) GetDebugStr() string {
	return "DeletePlanNode"
}
