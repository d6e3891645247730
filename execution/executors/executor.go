package executors

import (
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

// Executor is the contract shared by every operator of a pull-based plan.
//
// Open prepares the executor and its children. Calling it on an opened executor fails.
//
// HasNext and Next pull the next tuple. Next past the end fails with ErrNoSuchElement.
//
// Rewind is Close followed by Open. HasNext, Next and Rewind fail on a closed executor.
type Executor interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Close()
	Rewind() error
	GetOutputSchema() *schema.Schema
	GetChildren() []Executor
	SetChildren(children []Executor)
}

// abstractExecutor keeps the open state and a one tuple lookahead.
// fetchNext returns nil at the end of the stream.
type abstractExecutor struct {
	opened    bool
	next      *tuple.Tuple
	fetchNext func() (*tuple.Tuple, error)
}

func (e *abstractExecutor) open() error {
	if e.opened {
		return errors.ErrOperatorAlreadyOpen
	}
	e.opened = true
	e.next = nil
	return nil
}

func (e *abstractExecutor) close() {
	e.opened = false
	e.next = nil
}

func (e *abstractExecutor) HasNext() (bool, error) {
	if !e.opened {
		return false, errors.ErrOperatorNotOpen
	}
	if e.next == nil {
		t, err := e.fetchNext()
		if err != nil {
			return false, err
		}
		e.next = t
	}
	return e.next != nil, nil
}

func (e *abstractExecutor) Next() (*tuple.Tuple, error) {
	hasNext, err := e.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrNoSuchElement
	}
	ret := e.next
	e.next = nil
	return ret, nil
}

// rewind runs close and open of the concrete executor
func rewind(e Executor, opened bool) error {
	if !opened {
		return errors.ErrOperatorNotOpen
	}
	e.Close()
	return e.Open()
}
