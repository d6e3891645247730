// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"testing"

	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
	"github.com/ryogrid/SimpleHeapDB/storage/disk"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type testEnv struct {
	c      *catalog.Catalog
	bpm    *buffer.BufferPoolManager
	engine *ExecutionEngine
	ctx    *ExecutorContext
}

func newTestEnv(t *testing.T) *testEnv {
	bpm := buffer.NewBufferPoolManager(uint32(32), 4096, nil)
	c, err := catalog.BootstrapCatalog(bpm, func(name string) (disk.DiskManager, error) {
		return disk.NewVirtualDiskManagerImpl(name), nil
	})
	testingpkg.Ok(t, err)
	txn := access.NewTransaction(1)
	return &testEnv{c, bpm, &ExecutionEngine{}, NewExecutorContext(c, bpm, txn)}
}

func (env *testEnv) createTable(t *testing.T, name string, columns ...*column.Column) *catalog.TableMetadata {
	tableMetadata, err := env.c.CreateTable(name, schema.NewSchema(columns), env.ctx.GetTransaction())
	testingpkg.Ok(t, err)
	return tableMetadata
}

func (env *testEnv) insertRows(t *testing.T, tableMetadata *catalog.TableMetadata, rows [][]types.Value) {
	valuesPlan := plans.NewValuesPlanNode(tableMetadata.Schema(), rows)
	results, err := env.engine.Execute(plans.NewInsertPlanNode(valuesPlan, tableMetadata.OID()), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int32(len(rows)), results[0].GetValue(0).ToInteger())
}

func intRows(vals ...int32) [][]types.Value {
	rows := make([][]types.Value, 0)
	for _, v := range vals {
		rows = append(rows, []types.Value{types.NewInteger(v)})
	}
	return rows
}

func abRows(pairs ...int32) [][]types.Value {
	rows := make([][]types.Value, 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []types.Value{types.NewInteger(pairs[i]), types.NewInteger(pairs[i+1])})
	}
	return rows
}

func TestSimpleInsertAndSeqScan(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer), column.NewColumn("b", types.Integer))
	env.insertRows(t, tableMetadata, abRows(20, 22, 99, 55))

	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "t")
	results, err := env.engine.Execute(seqPlan, env.ctx)
	testingpkg.Ok(t, err)

	testingpkg.Equals(t, 2, len(results))
	testingpkg.Assert(t, types.NewInteger(20).CompareEquals(results[0].GetValue(0)), "value should be 20")
	testingpkg.Assert(t, types.NewInteger(99).CompareEquals(results[1].GetValue(0)), "value should be 99")
	testingpkg.Equals(t, "t.a", results[0].GetSchema().GetColumn(0).GetColumnName())
	testingpkg.Equals(t, "t.b", seqPlan.OutputSchema().GetColumn(1).GetColumnName())
	testingpkg.Equals(t, uint32(1), results[1].GetRID().GetSlotNum())
	// table schema keeps the original names
	testingpkg.Equals(t, "a", tableMetadata.Schema().GetColumn(0).GetColumnName())
}

func TestSimpleInsertAndSeqScanWithPredicateComparison(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1",
		column.NewColumn("a", types.Integer), column.NewColumn("b", types.Integer), column.NewColumn("c", types.Varchar))
	rows := [][]types.Value{
		{types.NewInteger(20), types.NewInteger(22), types.NewVarchar("foo")},
		{types.NewInteger(99), types.NewInteger(55), types.NewVarchar("bar")},
		{types.NewInteger(1225), types.NewInteger(712), types.NewVarchar("baz")},
	}
	env.insertRows(t, tableMetadata, rows)

	cases := []struct {
		predicate expression.Expression
		expected  []int32
	}{
		{expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(99)), expression.Equal), []int32{99}},
		{expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(99)), expression.NotEqual), []int32{20, 1225}},
		{expression.NewComparison(expression.NewColumnValue(1, types.Integer), expression.NewConstantValue(types.NewInteger(55)), expression.GreaterThanOrEqual), []int32{99, 1225}},
		{expression.NewComparison(expression.NewColumnValue(2, types.Varchar), expression.NewConstantValue(types.NewVarchar("ba")), expression.Like), []int32{99, 1225}},
		{expression.NewLogicalOp(
			expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(20)), expression.GreaterThan),
			expression.NewComparison(expression.NewColumnValue(2, types.Varchar), expression.NewConstantValue(types.NewVarchar("baz")), expression.NotEqual),
			expression.AND), []int32{99}},
		{expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(0)), expression.LessThan), []int32{}},
	}

	for _, test := range cases {
		seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")
		results, err := env.engine.Execute(plans.NewFilterPlanNode(seqPlan, test.predicate), env.ctx)
		testingpkg.Ok(t, err)
		testingpkg.Equals(t, len(test.expected), len(results))
		for i, exp := range test.expected {
			testingpkg.Equals(t, exp, results[i].GetValue(0).ToInteger())
		}
	}
}

func TestInsertIsSingleShot(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))

	insertPlan := plans.NewInsertPlanNode(plans.NewValuesPlanNode(tableMetadata.Schema(), intRows(1, 2, 3)), tableMetadata.OID())
	executor, err := env.engine.CreateExecutor(insertPlan, env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, executor.Open())

	result, err := executor.Next()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(3), result.GetValue(0).ToInteger())
	testingpkg.Equals(t, "Inserted", executor.GetOutputSchema().GetColumn(0).GetColumnName())

	hasNext, err := executor.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.AssertFalse(t, hasNext, "count tuple is produced once")
	_, err = executor.Next()
	testingpkg.ErrorIs(t, err, errors.ErrNoSuchElement)

	// rewind resets the flag and the counter and drains the child again
	testingpkg.Ok(t, executor.Rewind())
	result, err = executor.Next()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(3), result.GetValue(0).ToInteger())
	executor.Close()

	results, err := env.engine.Execute(plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), ""), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 6, len(results))
}

func TestInsertConstructionErrors(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))

	otherSchema := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Varchar)})
	valuesPlan := plans.NewValuesPlanNode(otherSchema, [][]types.Value{{types.NewVarchar("x")}})
	_, err := env.engine.CreateExecutor(plans.NewInsertPlanNode(valuesPlan, tableMetadata.OID()), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrSchemaMismatch)

	_, err = env.engine.CreateExecutor(plans.NewInsertPlanNode(plans.NewValuesPlanNode(tableMetadata.Schema(), intRows(1)), types.TableID(77)), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrTableNotFound)

	_, err = env.engine.CreateExecutor(plans.NewValuesPlanNode(tableMetadata.Schema(), [][]types.Value{{types.NewVarchar("x")}}), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrSchemaMismatch)

	_, err = env.engine.CreateExecutor(plans.NewValuesPlanNode(tableMetadata.Schema(), [][]types.Value{{}}), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrSchemaMismatch)

	_, err = env.engine.CreateExecutor(plans.NewSeqScanPlanNode(tableMetadata.Schema(), types.TableID(77), ""), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrTableNotFound)
}

func TestOperatorUsageErrors(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	env.insertRows(t, tableMetadata, intRows(1))

	executor, err := env.engine.CreateExecutor(plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), ""), env.ctx)
	testingpkg.Ok(t, err)

	_, err = executor.HasNext()
	testingpkg.ErrorIs(t, err, errors.ErrOperatorNotOpen)
	_, err = executor.Next()
	testingpkg.ErrorIs(t, err, errors.ErrOperatorNotOpen)
	testingpkg.ErrorIs(t, executor.Rewind(), errors.ErrOperatorNotOpen)

	testingpkg.Ok(t, executor.Open())
	testingpkg.ErrorIs(t, executor.Open(), errors.ErrOperatorAlreadyOpen)

	first, err := executor.Next()
	testingpkg.Ok(t, err)
	_, err = executor.Next()
	testingpkg.ErrorIs(t, err, errors.ErrNoSuchElement)

	testingpkg.Ok(t, executor.Rewind())
	again, err := executor.Next()
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, first.Equals(again))

	executor.Close()
	_, err = executor.HasNext()
	testingpkg.ErrorIs(t, err, errors.ErrOperatorNotOpen)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	env.insertRows(t, tableMetadata, intRows(1, 2, 3, 2))

	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")
	predicate := expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(2)), expression.Equal)
	results, err := env.engine.Execute(plans.NewDeletePlanNode(plans.NewFilterPlanNode(seqPlan, predicate)), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int32(2), results[0].GetValue(0).ToInteger())
	testingpkg.Equals(t, "Deleted", results[0].GetSchema().GetColumn(0).GetColumnName())

	results, err = env.engine.Execute(seqPlan, env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 2, len(results))
	testingpkg.Equals(t, int32(1), results[0].GetValue(0).ToInteger())
	testingpkg.Equals(t, int32(3), results[1].GetValue(0).ToInteger())

	// a tuple without RID can not be deleted
	noRID := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(1)}, tableMetadata.Schema())
	deletePlan := plans.NewDeletePlanNode(plans.NewValuesPlanNode(tableMetadata.Schema(), intRows(1)))
	_, err = env.engine.Execute(deletePlan, env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrRecordNotOnPage)
	testingpkg.ErrorIs(t, env.bpm.DeleteTuple(env.ctx.GetTransaction(), noRID), errors.ErrRecordNotOnPage)
}

func TestAggregation(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	env.insertRows(t, tableMetadata, intRows(1, 2, 3, 4))
	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")

	cases := []struct {
		aggType  plans.AggregationType
		expected int32
	}{
		{plans.AVG_AGGREGATE, 2},
		{plans.COUNT_AGGREGATE, 4},
		{plans.SUM_AGGREGATE, 10},
		{plans.MIN_AGGREGATE, 1},
		{plans.MAX_AGGREGATE, 4},
	}
	for _, test := range cases {
		results, err := env.engine.Execute(plans.NewAggregationPlanNode(seqPlan, plans.NoGrouping, 0, test.aggType), env.ctx)
		testingpkg.Ok(t, err)
		testingpkg.Equals(t, 1, len(results))
		testingpkg.Equals(t, uint32(1), results[0].GetSchema().GetColumnCount())
		testingpkg.Equals(t, "aggregateVal", results[0].GetSchema().GetColumn(0).GetColumnName())
		testingpkg.Equals(t, test.expected, results[0].GetValue(0).ToInteger())
	}
}

func TestGroupedAggregation(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("g", types.Varchar), column.NewColumn("v", types.Integer))
	rows := [][]types.Value{
		{types.NewVarchar("x"), types.NewInteger(10)},
		{types.NewVarchar("y"), types.NewInteger(5)},
		{types.NewVarchar("x"), types.NewInteger(21)},
		{types.NewVarchar("z"), types.NewInteger(-3)},
	}
	env.insertRows(t, tableMetadata, rows)
	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")

	results, err := env.engine.Execute(plans.NewAggregationPlanNode(seqPlan, 0, 1, plans.AVG_AGGREGATE), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 3, len(results))
	// groups come out in first-seen order
	testingpkg.Equals(t, "x", results[0].GetValue(0).ToVarchar())
	testingpkg.Equals(t, int32(15), results[0].GetValue(1).ToInteger())
	testingpkg.Equals(t, "y", results[1].GetValue(0).ToVarchar())
	testingpkg.Equals(t, int32(5), results[1].GetValue(1).ToInteger())
	testingpkg.Equals(t, "z", results[2].GetValue(0).ToVarchar())
	testingpkg.Equals(t, "groupVal", results[2].GetSchema().GetColumn(0).GetColumnName())
	testingpkg.Equals(t, types.Varchar, results[2].GetSchema().GetColumn(0).GetType())

	// strings support COUNT only
	results, err = env.engine.Execute(plans.NewAggregationPlanNode(seqPlan, 1, 0, plans.COUNT_AGGREGATE), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 4, len(results))
	testingpkg.Equals(t, int32(1), results[0].GetValue(1).ToInteger())

	_, err = env.engine.CreateExecutor(plans.NewAggregationPlanNode(seqPlan, plans.NoGrouping, 0, plans.SUM_AGGREGATE), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrUnsupportedAggregate)
	_, err = env.engine.CreateExecutor(plans.NewAggregationPlanNode(seqPlan, plans.NoGrouping, 5, plans.COUNT_AGGREGATE), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrInvalidField)
}

func TestAggregationOverEmptyInput(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")

	results, err := env.engine.Execute(plans.NewAggregationPlanNode(seqPlan, plans.NoGrouping, 0, plans.AVG_AGGREGATE), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int32(0), results[0].GetValue(0).ToInteger())

	results, err = env.engine.Execute(plans.NewAggregationPlanNode(seqPlan, 0, 0, plans.COUNT_AGGREGATE), env.ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(results))
}

func TestAggregatorMergesIncrementally(t *testing.T) {
	input := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})
	aggregator, err := NewAggregator(input, plans.NoGrouping, 0, plans.MAX_AGGREGATE)
	testingpkg.Ok(t, err)

	for _, v := range []int32{3, -7, 12, 5} {
		testingpkg.Ok(t, aggregator.MergeTupleIntoGroup(tuple.NewTupleFromSchema([]types.Value{types.NewInteger(v)}, input)))
	}
	it := aggregator.Iterator()
	testingpkg.Ok(t, it.Open())
	result, err := it.Next()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(12), result.GetValue(0).ToInteger())
	hasNext, err := it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.AssertFalse(t, hasNext, "one group")
}

func TestTransactionAbortedPropagates(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	env.insertRows(t, tableMetadata, intRows(1, 2))
	testingpkg.Ok(t, env.bpm.TransactionComplete(env.ctx.GetTransaction(), true))

	txn := access.NewTransaction(2)
	txn.SetState(access.ABORTED)
	env.ctx.SetTransaction(txn)

	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")
	predicate := expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(0)), expression.GreaterThan)
	aggPlan := plans.NewAggregationPlanNode(plans.NewFilterPlanNode(seqPlan, predicate), plans.NoGrouping, 0, plans.COUNT_AGGREGATE)

	_, err := env.engine.Execute(aggPlan, env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrTransactionAborted)

	_, err = env.engine.Execute(plans.NewInsertPlanNode(plans.NewValuesPlanNode(tableMetadata.Schema(), intRows(3)), tableMetadata.OID()), env.ctx)
	testingpkg.ErrorIs(t, err, errors.ErrTransactionAborted)
}

func TestWalkExecutors(t *testing.T) {
	env := newTestEnv(t)
	tableMetadata := env.createTable(t, "test_1", column.NewColumn("a", types.Integer))
	seqPlan := plans.NewSeqScanPlanNode(tableMetadata.Schema(), tableMetadata.OID(), "")
	predicate := expression.NewComparison(expression.NewColumnValue(0, types.Integer), expression.NewConstantValue(types.NewInteger(0)), expression.GreaterThan)
	deletePlan := plans.NewDeletePlanNode(plans.NewFilterPlanNode(seqPlan, predicate))

	executor, err := env.engine.CreateExecutor(deletePlan, env.ctx)
	testingpkg.Ok(t, err)

	visited := make([]string, 0)
	WalkExecutors(executor, func(exec Executor) {
		switch exec.(type) {
		case *DeleteExecutor:
			visited = append(visited, "delete")
		case *FilterExecutor:
			visited = append(visited, "filter")
		case *SeqScanExecutor:
			visited = append(visited, "scan")
		}
	})
	testingpkg.Equals(t, []string{"delete", "filter", "scan"}, visited)

	// children can be replaced for tree rewriting
	filter := executor.GetChildren()[0]
	executor.SetChildren(filter.GetChildren())
	testingpkg.Equals(t, 1, len(executor.GetChildren()))
	_, ok := executor.GetChildren()[0].(*SeqScanExecutor)
	testingpkg.SimpleAssert(t, ok)
}
