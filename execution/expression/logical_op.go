package expression

import (
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type LogicalOpType int

/** LogicalOpType represents the type of comparison that we want to perform. */
const (
	AND LogicalOpType = iota
	OR
	NOT
)

func (l LogicalOpType) String() string {
	switch l {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	}
	return "?"
}

/**
 * LogicalOp represents two expressions or one expression being evaluated with logical operator.
 */
type LogicalOp struct {
	*AbstractExpression
	logicalOpType LogicalOpType
}

// if logicalOpType is "NOT", right value must be nil
func NewLogicalOp(left Expression, right Expression, logicalOpType LogicalOpType) Expression {
	return &LogicalOp{&AbstractExpression{[2]Expression{left, right}, types.Boolean}, logicalOpType}
}

func (c *LogicalOp) Evaluate(tuple *tuple.Tuple) types.Value {
	lhs := c.children[0].Evaluate(tuple).ToBoolean()
	switch c.logicalOpType {
	case NOT:
		return types.NewBoolean(!lhs)
	case AND:
		// right side is evaluated only when needed
		return types.NewBoolean(lhs && c.children[1].Evaluate(tuple).ToBoolean())
	case OR:
		return types.NewBoolean(lhs || c.children[1].Evaluate(tuple).ToBoolean())
	}
	panic("unknown logicalOpType is passed!")
}

func (c *LogicalOp) GetLogicalOpType() LogicalOpType {
	return c.logicalOpType
}

func (c *LogicalOp) GetType() ExpressionType {
	return EXPRESSION_TYPE_LOGICAL_OP
}

func (c *LogicalOp) String() string {
	if c.logicalOpType == NOT {
		return "(NOT " + c.children[0].String() + ")"
	}
	return "(" + c.children[0].String() + " " + c.logicalOpType.String() + " " + c.children[1].String() + ")"
}

// AppendLogicalCondition joins addCond to baseConds with opType. A nil base yields addCond.
func AppendLogicalCondition(baseConds Expression, opType LogicalOpType, addCond Expression) Expression {
	if baseConds == nil {
		return addCond
	}
	return NewLogicalOp(baseConds, addCond, opType)
}
