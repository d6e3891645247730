package executors

import (
	"fmt"

	"github.com/golang-collections/collections/stack"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

type ExecutionEngine struct {
}

// Execute builds the executor tree of plan, then opens and drains it
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	executor, err := e.CreateExecutor(plan, context)
	if err != nil {
		return nil, err
	}
	if common.LogLevelSetting&common.DEBUG_INFO > 0 {
		WalkExecutors(executor, func(exec Executor) {
			common.ShPrintf(common.DEBUG_INFO, "ExecutionEngine: %T [%v]\n", exec, exec.GetOutputSchema())
		})
	}

	if err = executor.Open(); err != nil {
		return nil, err
	}
	defer executor.Close()

	tuples := make([]*tuple.Tuple, 0)
	for {
		hasNext, err := executor.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			break
		}
		t, err := executor.Next()
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}

	return tuples, nil
}

// CreateExecutor builds executors bottom up from plan
func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) (Executor, error) {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		executor, err := NewSeqScanExecutor(context, p)
		if err != nil {
			return nil, err
		}
		return executor, nil
	case *plans.ValuesPlanNode:
		executor, err := NewValuesExecutor(p)
		if err != nil {
			return nil, err
		}
		return executor, nil
	case *plans.FilterPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewFilterExecutor(context, p, child), nil
	case *plans.InsertPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		executor, err := NewInsertExecutor(context, p, child)
		if err != nil {
			return nil, err
		}
		return executor, nil
	case *plans.DeletePlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewDeleteExecutor(context, p, child), nil
	case *plans.AggregationPlanNode:
		child, err := e.CreateExecutor(p.GetChildPlan(), context)
		if err != nil {
			return nil, err
		}
		executor, err := NewAggregationExecutor(context, p, child)
		if err != nil {
			return nil, err
		}
		return executor, nil
	}
	return nil, fmt.Errorf("no executor for plan %T", plan)
}

// WalkExecutors visits root and its descendants in pre-order
func WalkExecutors(root Executor, visit func(Executor)) {
	st := stack.New()
	st.Push(root)
	for st.Len() > 0 {
		exec := st.Pop().(Executor)
		visit(exec)
		children := exec.GetChildren()
		for i := len(children) - 1; i >= 0; i-- {
			st.Push(children[i])
		}
	}
}
