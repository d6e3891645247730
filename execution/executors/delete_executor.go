package executors

import (
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * DeleteExecutor deletes every tuple of its child by RID on the first pull
 * and produces a single (Deleted) count tuple per open/rewind cycle.
 */
type DeleteExecutor struct {
	abstractExecutor
	context *ExecutorContext
	plan    *plans.DeletePlanNode
	child   Executor
	done    bool
	count   int32
}

func NewDeleteExecutor(context *ExecutorContext, plan *plans.DeletePlanNode, child Executor) *DeleteExecutor {
	ret := &DeleteExecutor{context: context, plan: plan, child: child}
	ret.fetchNext = ret.readNext
	return ret
}

func (e *DeleteExecutor) Open() error {
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

func (e *DeleteExecutor) readNext() (*tuple.Tuple, error) {
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
		if err = bpm.DeleteTuple(txn, t); err != nil {
			return nil, err
		}
		e.count++
	}
	common.ShPrintf(common.DEBUG_INFO, "DeleteExecutor: %d tuples deleted\n", e.count)
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(e.count)}, e.plan.OutputSchema()), nil
}

func (e *DeleteExecutor) Close() {
	e.child.Close()
	e.close()
}

func (e *DeleteExecutor) Rewind() error {
	return rewind(e, e.opened)
}

func (e *DeleteExecutor) GetOutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

func (e *DeleteExecutor) GetChildren() []Executor {
	return []Executor{e.child}
}

func (e *DeleteExecutor) SetChildren(children []Executor) {
	e.child = children[0]
}
