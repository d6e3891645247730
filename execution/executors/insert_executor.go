// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// InsertExecutor drains its child into the table on the first pull and
// produces a single (Inserted) count tuple per open/rewind cycle.
type InsertExecutor struct {
	abstractExecutor
	context *ExecutorContext
	plan    *plans.InsertPlanNode
	child   Executor
	done    bool
	count   int32
}

func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode, child Executor) (*InsertExecutor, error) {
	tableSchema, err := context.GetCatalog().GetSchema(plan.GetTableOID())
	if err != nil {
		return nil, err
	}
	if !child.GetOutputSchema().Equals(tableSchema) {
		return nil, fmt.Errorf("insert [%v] into table %d [%v]: %w", child.GetOutputSchema(), plan.GetTableOID(), tableSchema, errors.ErrSchemaMismatch)
	}
	ret := &InsertExecutor{context: context, plan: plan, child: child}
	ret.fetchNext = ret.readNext
	return ret, nil
}

func (e *InsertExecutor) Open() error {
	if err := e.open(); err != nil {
		return err
	}
	if err := e.child.Open(); err != nil {
		e.close()
		return err
	}
	e.done = false
	e.count = 0
	return nil
}

func (e *InsertExecutor) readNext() (*tuple.Tuple, error) {
	if e.done {
		return nil, nil
	}
	e.done = true

	txn := e.context.GetTransaction()
	bpm := e.context.GetBufferPoolManager()
	for {
		hasNext, err := e.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			break
		}
		t, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if err = bpm.InsertTuple(txn, e.plan.GetTableOID(), t); err != nil {
			return nil, err
		}
		e.count++
	}
	common.ShPrintf(common.DEBUG_INFO, "InsertExecutor: %d tuples into table %d\n", e.count, e.plan.GetTableOID())
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(e.count)}, e.plan.OutputSchema()), nil
}

func (e *InsertExecutor) Close() {
	e.child.Close()
	e.close()
}

func (e *InsertExecutor) Rewind() error {
	return rewind(e, e.opened)
}

func (e *InsertExecutor) GetOutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

func (e *InsertExecutor) GetChildren() []Executor {
	return []Executor{e.child}
}

func (e *InsertExecutor) SetChildren(children []Executor) {
	e.child = children[0]
}
