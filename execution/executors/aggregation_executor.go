package executors

import (
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

/**
 * AggregationExecutor executes an aggregation operation (e.g. COUNT, SUM, MIN, MAX, AVG) on the tuples of a child executor.
 * The child is drained into a fresh Aggregator on every Open.
 */
type AggregationExecutor struct {
	abstractExecutor
	context *ExecutorContext
	/** The aggregation plan node. */
	plan *plans.AggregationPlanNode
	/** The child executor whose tuples we are aggregating. */
	child Executor
	/** Results of the last drain. */
	results *TupleIterator
}

/**
 * Creates a new aggregation executor.
 * Fails when the fields are out of range of the child schema or the aggregate is not supported for the field type.
 */
func NewAggregationExecutor(exec_ctx *ExecutorContext, plan *plans.AggregationPlanNode, child Executor) (*AggregationExecutor, error) {
	if _, err := NewAggregator(child.GetOutputSchema(), plan.GetGroupByField(), plan.GetAggregateField(), plan.GetAggregateType()); err != nil {
		return nil, err
	}
	ret := &AggregationExecutor{context: exec_ctx, plan: plan, child: child}
	ret.fetchNext = ret.readNext
	return ret, nil
}

func (e *AggregationExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *AggregationExecutor) Open() error {
	if err := e.open(); err != nil {
		return err
	}
	if err := e.child.Open(); err != nil {
		e.close()
		return err
	}
	results, err := e.aggregate()
	if err != nil {
		e.Close()
		return err
	}
	e.results = results
	return e.results.Open()
}

func (e *AggregationExecutor) aggregate() (*TupleIterator, error) {
	aggregator, err := NewAggregator(e.child.GetOutputSchema(), e.plan.GetGroupByField(), e.plan.GetAggregateField(), e.plan.GetAggregateType())
	if err != nil {
		return nil, err
	}
	merged := 0
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
		if err = aggregator.MergeTupleIntoGroup(t); err != nil {
			return nil, err
		}
		merged++
	}
	common.ShPrintf(common.DEBUG_INFO, "AggregationExecutor: %d tuples merged\n", merged)
	return aggregator.Iterator(), nil
}

func (e *AggregationExecutor) readNext() (*tuple.Tuple, error) {
	hasNext, err := e.results.HasNext()
	if err != nil || !hasNext {
		return nil, err
	}
	return e.results.Next()
}

func (e *AggregationExecutor) Close() {
	if e.results != nil {
		e.results.Close()
		e.results = nil
	}
	e.child.Close()
	e.close()
}

func (e *AggregationExecutor) Rewind() error {
	return rewind(e, e.opened)
}

func (e *AggregationExecutor) GetChildren() []Executor {
	return []Executor{e.child}
}

func (e *AggregationExecutor) SetChildren(children []Executor) {
	e.child = children[0]
}
