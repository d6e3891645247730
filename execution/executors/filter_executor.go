package executors

import (
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

// do filtering according to the predicate for the tuples of the child executor

type FilterExecutor struct {
	abstractExecutor
	context *ExecutorContext
	plan    *plans.FilterPlanNode // contains the predicate
	child   Executor              // the child executor that will provide tuples to the this executor
}

func NewFilterExecutor(context *ExecutorContext, plan *plans.FilterPlanNode, child Executor) *FilterExecutor {
	ret := &FilterExecutor{context: context, plan: plan, child: child}
	ret.fetchNext = ret.readNext
	return ret
}

func (e *FilterExecutor) Open() error {
	if err := e.open(); err != nil {
		return err
	}
	if err := e.child.Open(); err != nil {
		e.close()
		return err
	}
	return nil
}

func (e *FilterExecutor) readNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := e.child.HasNext()
		if err != nil || !hasNext {
			return nil, err
		}
		t, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if e.selects(t, e.plan.GetPredicate()) {
			return t, nil
		}
	}
}

func (e *FilterExecutor) Close() {
	e.child.Close()
	e.close()
}

func (e *FilterExecutor) Rewind() error {
	return rewind(e, e.opened)
}

func (e *FilterExecutor) GetOutputSchema() *schema.Schema {
	return e.child.GetOutputSchema()
}

func (e *FilterExecutor) GetChildren() []Executor {
	return []Executor{e.child}
}

func (e *FilterExecutor) SetChildren(children []Executor) {
	e.child = children[0]
}

// select evaluates an expression on the tuple
func (e *FilterExecutor) selects(tuple *tuple.Tuple, predicate expression.Expression) bool {
	return predicate == nil || predicate.Evaluate(tuple).ToBoolean()
}
