package executors

import (
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

// TupleIterator produces a fixed list of tuples. Aggregation results and
// raw insert values are served through it.
type TupleIterator struct {
	abstractExecutor
	schema_ *schema.Schema
	tuples  []*tuple.Tuple
	pos     int
}

func NewTupleIterator(schema_ *schema.Schema, tuples []*tuple.Tuple) *TupleIterator {
	ret := &TupleIterator{schema_: schema_, tuples: tuples}
	ret.fetchNext = ret.readNext
	return ret
}

func (it *TupleIterator) Open() error {
	if err := it.open(); err != nil {
		return err
	}
	it.pos = 0
	return nil
}

func (it *TupleIterator) readNext() (*tuple.Tuple, error) {
	if it.pos >= len(it.tuples) {
		return nil, nil
	}
	ret := it.tuples[it.pos]
	it.pos++
	return ret, nil
}

func (it *TupleIterator) Close() {
	it.close()
}

func (it *TupleIterator) Rewind() error {
	return rewind(it, it.opened)
}

func (it *TupleIterator) GetOutputSchema() *schema.Schema {
	return it.schema_
}

func (it *TupleIterator) GetChildren() []Executor {
	return nil
}

func (it *TupleIterator) SetChildren(children []Executor) {}
