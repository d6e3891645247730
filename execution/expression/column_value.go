// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * ColumnValue maintains the column index relative to the schema of the evaluated tuple.
 */
type ColumnValue struct {
	*AbstractExpression
	colIndex uint32 // Column index refers to the index within the schema of the tuple, e.g. schema {A,B,C} has indexes {0,1,2}
}

func NewColumnValue(colIndex uint32, colType types.TypeID) Expression {
	return &ColumnValue{&AbstractExpression{[2]Expression{}, colType}, colIndex}
}

func (c *ColumnValue) Evaluate(tuple *tuple.Tuple) types.Value {
	return tuple.GetValue(c.colIndex)
}

func (c *ColumnValue) GetColIndex() uint32 {
	return c.colIndex
}

func (c *ColumnValue) SetColIndex(colIndex uint32) {
	c.colIndex = colIndex
}

func (c *ColumnValue) GetType() ExpressionType {
	return EXPRESSION_TYPE_COLUMN_VALUE
}

func (c *ColumnValue) String() string {
	return fmt.Sprintf("#%d", c.colIndex)
}
