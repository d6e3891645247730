// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/ryogrid/SimpleHeapDB/execution/plans"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

/**
 * SeqScanExecutor executes a sequential scan over a table.
 * Tuples are copies carrying their RID, bound to the alias-prefixed schema.
 */
type SeqScanExecutor struct {
	abstractExecutor
	context  *ExecutorContext
	plan     *plans.SeqScanPlanNode
	heapFile *access.HeapFile
	it       *access.HeapFileIterator
}

// NewSeqScanExecutor creates a new sequential executor
func NewSeqScanExecutor(context *ExecutorContext, plan *plans.SeqScanPlanNode) (*SeqScanExecutor, error) {
	hf, err := context.GetCatalog().GetDatabaseFile(plan.GetTableOID())
	if err != nil {
		return nil, err
	}
	ret := &SeqScanExecutor{context: context, plan: plan, heapFile: hf}
	ret.fetchNext = ret.readNext
	return ret, nil
}

func (e *SeqScanExecutor) Open() error {
	if err := e.open(); err != nil {
		return err
	}
	e.it = e.heapFile.Iterator(e.context.GetTransaction())
	if err := e.it.Open(); err != nil {
		e.close()
		return err
	}
	return nil
}

func (e *SeqScanExecutor) readNext() (*tuple.Tuple, error) {
	hasNext, err := e.it.HasNext()
	if err != nil || !hasNext {
		return nil, err
	}
	t, err := e.it.Next()
	if err != nil {
		return nil, err
	}
	return t.WithSchema(e.plan.OutputSchema()), nil
}

func (e *SeqScanExecutor) Close() {
	if e.it != nil {
		e.it.Close()
		e.it = nil
	}
	e.close()
}

func (e *SeqScanExecutor) Rewind() error {
	return rewind(e, e.opened)
}

func (e *SeqScanExecutor) GetOutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

func (e *SeqScanExecutor) GetChildren() []Executor {
	return nil
}

func (e *SeqScanExecutor) SetChildren(children []Executor) {}
