// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type ConstantValue struct {
	*AbstractExpression
	value types.Value
}

func NewConstantValue(value types.Value) Expression {
	return &ConstantValue{&AbstractExpression{[2]Expression{}, value.ValueType()}, value}
}

func (c *ConstantValue) Evaluate(tuple *tuple.Tuple) types.Value {
	return c.value
}

func (c *ConstantValue) GetValue() types.Value {
	return c.value
}

func (c *ConstantValue) GetType() ExpressionType {
	return EXPRESSION_TYPE_CONSTANT_VALUE
}

func (c *ConstantValue) String() string {
	if c.value.ValueType() == types.Varchar {
		return "'" + c.value.ToVarchar() + "'"
	}
	return c.value.String()
}
