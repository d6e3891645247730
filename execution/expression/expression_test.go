package expression

import (
	"testing"

	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
	"github.com/ryogrid/SimpleHeapDB/types"
)

func newRow(a int32, b string) *tuple.Tuple {
	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Integer), column.NewColumn("b", types.Varchar)})
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(a), types.NewVarchar(b)}, schema_)
}

func TestComparison(t *testing.T) {
	row := newRow(10, "hello world")
	colA := NewColumnValue(0, types.Integer)
	colB := NewColumnValue(1, types.Varchar)

	cases := []struct {
		cmp      Expression
		expected bool
	}{
		{NewComparison(colA, NewConstantValue(types.NewInteger(10)), Equal), true},
		{NewComparison(colA, NewConstantValue(types.NewInteger(10)), NotEqual), false},
		{NewComparison(colA, NewConstantValue(types.NewInteger(9)), GreaterThan), true},
		{NewComparison(colA, NewConstantValue(types.NewInteger(10)), GreaterThan), false},
		{NewComparison(colA, NewConstantValue(types.NewInteger(10)), GreaterThanOrEqual), true},
		{NewComparison(colA, NewConstantValue(types.NewInteger(11)), LessThan), true},
		{NewComparison(colA, NewConstantValue(types.NewInteger(10)), LessThanOrEqual), true},
		{NewComparison(colB, NewConstantValue(types.NewVarchar("lo wo")), Like), true},
		{NewComparison(colB, NewConstantValue(types.NewVarchar("bye")), Like), false},
		{NewComparison(colB, NewConstantValue(types.NewVarchar("a")), GreaterThan), true},
		{NewComparison(colA, NewConstantValue(types.NewVarchar("10")), Equal), false},
		{NewComparison(colA, NewConstantValue(types.NewVarchar("10")), NotEqual), true},
	}
	for _, c := range cases {
		testingpkg.Assert(t, c.cmp.Evaluate(row).ToBoolean() == c.expected, "%s expected %v", c.cmp.String(), c.expected)
	}
}

func TestLogicalOp(t *testing.T) {
	row := newRow(5, "x")
	colA := NewColumnValue(0, types.Integer)
	gt := NewComparison(colA, NewConstantValue(types.NewInteger(1)), GreaterThan)
	lt := NewComparison(colA, NewConstantValue(types.NewInteger(3)), LessThan)

	testingpkg.AssertFalse(t, NewLogicalOp(gt, lt, AND).Evaluate(row).ToBoolean(), "5 > 1 AND 5 < 3")
	testingpkg.SimpleAssert(t, NewLogicalOp(gt, lt, OR).Evaluate(row).ToBoolean())
	testingpkg.SimpleAssert(t, NewLogicalOp(lt, nil, NOT).Evaluate(row).ToBoolean())
	testingpkg.Equals(t, types.Boolean, gt.GetReturnType())

	conds := AppendLogicalCondition(nil, AND, gt)
	testingpkg.Assert(t, conds == gt, "nil base yields the added condition")
	conds = AppendLogicalCondition(conds, AND, lt)
	testingpkg.Equals(t, "((#0 > 1) AND (#0 < 3))", conds.String())
	testingpkg.Equals(t, EXPRESSION_TYPE_LOGICAL_OP, conds.GetType())
}

func TestSwap(t *testing.T) {
	testingpkg.Equals(t, LessThan, GreaterThan.Swap())
	testingpkg.Equals(t, GreaterThanOrEqual, LessThanOrEqual.Swap())
	testingpkg.Equals(t, Equal, Equal.Swap())
}
