// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type ComparisonType int

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Like
)

func (c ComparisonType) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Like:
		return "LIKE"
	}
	return "?"
}

// Swap returns the operator to use when both operands trade places
func (c ComparisonType) Swap() ComparisonType {
	switch c {
	case GreaterThan:
		return LessThan
	case GreaterThanOrEqual:
		return LessThanOrEqual
	case LessThan:
		return GreaterThan
	case LessThanOrEqual:
		return GreaterThanOrEqual
	}
	return c
}

/**
 * Comparison represents two expressions being compared.
 */
type Comparison struct {
	*AbstractExpression
	comparisonType ComparisonType
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType) Expression {
	return NewComparisonAsComparison(left, right, comparisonType)
}

func NewComparisonAsComparison(left Expression, right Expression, comparisonType ComparisonType) *Comparison {
	return &Comparison{&AbstractExpression{[2]Expression{left, right}, types.Boolean}, comparisonType}
}

func (c *Comparison) Evaluate(tuple *tuple.Tuple) types.Value {
	lhs := c.children[0].Evaluate(tuple)
	rhs := c.children[1].Evaluate(tuple)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) bool {
	// operands of different types never match
	if lhs.ValueType() != rhs.ValueType() {
		return c.comparisonType == NotEqual
	}
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	case GreaterThan:
		return lhs.CompareGreaterThan(rhs)
	case GreaterThanOrEqual:
		return lhs.CompareGreaterThanOrEqual(rhs)
	case LessThan:
		return lhs.CompareLessThan(rhs)
	case LessThanOrEqual:
		return lhs.CompareLessThanOrEqual(rhs)
	case Like:
		return lhs.CompareLike(rhs)
	}
	return false
}

func (c *Comparison) GetLeftSide() Expression {
	return c.children[0]
}

func (c *Comparison) GetRightSide() Expression {
	return c.children[1]
}

func (c *Comparison) GetComparisonType() ComparisonType {
	return c.comparisonType
}

func (c *Comparison) GetType() ExpressionType {
	return EXPRESSION_TYPE_COMPARISON
}

func (c *Comparison) String() string {
	return "(" + c.children[0].String() + " " + c.comparisonType.String() + " " + c.children[1].String() + ")"
}
