package access

import (
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
)

// HeapFileIterator walks every tuple of a heap file, page by page in
// ascending order and slot by slot inside a page. Pages without live
// tuples are skipped. Pages are fetched through the page cache read-only.
type HeapFileIterator struct {
	heapFile *HeapFile
	txn      *Transaction
	opened   bool
	pageNo   int
	pageIter *HeapPageIterator
}

func NewHeapFileIterator(hf *HeapFile, txn *Transaction) *HeapFileIterator {
	return &HeapFileIterator{heapFile: hf, txn: txn}
}

func (it *HeapFileIterator) Open() error {
	it.opened = true
	it.pageNo = -1
	it.pageIter = nil
	return nil
}

// advance moves to the next page holding a tuple, pageIter is nil at the end
func (it *HeapFileIterator) advance() error {
	for it.pageIter == nil || !it.pageIter.HasNext() {
		it.pageNo++
		if it.pageNo >= it.heapFile.NumPages() {
			it.pageIter = nil
			return nil
		}
		p, err := it.heapFile.cache.FetchPage(it.txn, it.heapFile.pageID(it.pageNo), READ_ONLY)
		if err != nil {
			return err
		}
		it.pageIter = p.Iterator()
	}
	return nil
}

func (it *HeapFileIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, nil
	}
	if it.pageIter != nil && it.pageIter.HasNext() {
		return true, nil
	}
	if it.pageNo >= it.heapFile.NumPages() {
		return false, nil
	}
	if err := it.advance(); err != nil {
		return false, err
	}
	return it.pageIter != nil, nil
}

func (it *HeapFileIterator) Next() (*tuple.Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrNoSuchElement
	}
	return it.pageIter.Next(), nil
}

// Rewind releases the current page cursor and starts again from page 0
func (it *HeapFileIterator) Rewind() error {
	it.Close()
	return it.Open()
}

func (it *HeapFileIterator) Close() {
	it.opened = false
	it.pageIter = nil
}
