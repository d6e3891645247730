package access

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/disk"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type Permissions int32

const (
	READ_ONLY Permissions = iota
	READ_WRITE
)

// PageCache owns resident pages. HeapFile reads every page through it.
type PageCache interface {
	FetchPage(txn *Transaction, pid page.HeapPageID, perm Permissions) (*HeapPage, error)
	PageSize() int
}

// HeapFile stores the tuples of one table as a dense sequence of pages
type HeapFile struct {
	tableID types.TableID
	schema  *schema.Schema
	dm      disk.DiskManager
	cache   PageCache
}

func NewHeapFile(tableID types.TableID, schema_ *schema.Schema, dm disk.DiskManager, cache PageCache) *HeapFile {
	return &HeapFile{tableID, schema_, dm, cache}
}

func (hf *HeapFile) GetID() types.TableID {
	return hf.tableID
}

func (hf *HeapFile) GetSchema() *schema.Schema {
	return hf.schema
}

func (hf *HeapFile) GetDiskManager() disk.DiskManager {
	return hf.dm
}

func (hf *HeapFile) PageSize() int {
	return hf.cache.PageSize()
}

// NumPages is ceil(file size / page size)
func (hf *HeapFile) NumPages() int {
	pageSize := int64(hf.PageSize())
	return int((hf.dm.Size() + pageSize - 1) / pageSize)
}

// ReadPage reads and decodes one page from the backing store, bypassing the cache
func (hf *HeapFile) ReadPage(pid page.HeapPageID) (*HeapPage, error) {
	if pid.GetTableID() != hf.tableID {
		return nil, fmt.Errorf("read %v from table %d: %w", pid, hf.tableID, errors.ErrStorageIOFailure)
	}
	if int(pid.GetPageNo()) >= hf.NumPages() || pid.GetPageNo() < 0 {
		return nil, fmt.Errorf("read %v: past end of file (%d pages): %w", pid, hf.NumPages(), errors.ErrStorageIOFailure)
	}

	data := make([]byte, hf.PageSize())
	if err := hf.dm.ReadPage(pid.GetPageNo(), data); err != nil {
		return nil, err
	}
	return NewHeapPage(pid, hf.schema, data)
}

// WritePage writes the full image of p at its page number
func (hf *HeapFile) WritePage(p *HeapPage) error {
	return hf.dm.WritePage(p.GetID().GetPageNo(), p.GetPageData())
}

func (hf *HeapFile) pageID(pageNo int) page.HeapPageID {
	return page.NewHeapPageID(hf.tableID, types.PageID(pageNo))
}

// InsertTuple puts t into the first page with a free slot, appending a page
// when every page is full. It returns the page that became dirty.
func (hf *HeapFile) InsertTuple(txn *Transaction, t *tuple.Tuple) ([]*HeapPage, error) {
	if !hf.schema.Equals(t.GetSchema()) {
		return nil, fmt.Errorf("insert into table %d: %w", hf.tableID, errors.ErrSchemaMismatch)
	}
	// rejected tuples must not allocate a page
	for i := uint32(0); i < hf.schema.GetColumnCount(); i++ {
		if !t.IsSet(i) {
			return nil, fmt.Errorf("insert into table %d: field %d is not set: %w", hf.tableID, i, errors.ErrSchemaMismatch)
		}
	}
	if GetNumSlotsOf(hf.PageSize(), hf.schema.Length()) == 0 {
		return nil, fmt.Errorf("insert into table %d: tuple of %d bytes does not fit a %d byte page: %w",
			hf.tableID, hf.schema.Length(), hf.PageSize(), errors.ErrPageFull)
	}

	numPages := hf.NumPages()
	for i := 0; i < numPages; i++ {
		p, err := hf.cache.FetchPage(txn, hf.pageID(i), READ_WRITE)
		if err != nil {
			return nil, err
		}
		if p.GetNumEmptySlots() == 0 {
			continue
		}
		if err = p.InsertTuple(t); err != nil {
			return nil, err
		}
		return []*HeapPage{p}, nil
	}

	// the zero image goes to disk first so that NumPages covers the new page.
	// The tuple itself reaches disk only when the transaction commits: an
	// abort restores the cached zero image and the file holds no stale tuple.
	pid := hf.pageID(numPages)
	common.ShPrintf(common.DEBUG_INFO, "HeapFile::InsertTuple: allocate %v\n", pid)
	if err := hf.dm.WritePage(pid.GetPageNo(), CreateEmptyPageData(hf.PageSize())); err != nil {
		return nil, err
	}
	p, err := hf.cache.FetchPage(txn, pid, READ_WRITE)
	if err != nil {
		return nil, err
	}
	if err = p.InsertTuple(t); err != nil {
		return nil, err
	}
	return []*HeapPage{p}, nil
}

// DeleteTuple frees the slot addressed by the RID of t
func (hf *HeapFile) DeleteTuple(txn *Transaction, t *tuple.Tuple) ([]*HeapPage, error) {
	rid := t.GetRID()
	if rid == nil {
		return nil, fmt.Errorf("delete from table %d: no rid: %w", hf.tableID, errors.ErrRecordNotOnPage)
	}
	pid := rid.GetPageId()
	if pid.GetTableID() != hf.tableID || pid.GetPageNo() < 0 || int(pid.GetPageNo()) >= hf.NumPages() {
		return nil, fmt.Errorf("delete from table %d: %v: %w", hf.tableID, rid, errors.ErrRecordNotOnPage)
	}

	p, err := hf.cache.FetchPage(txn, pid, READ_WRITE)
	if err != nil {
		return nil, err
	}
	if err = p.DeleteTuple(t); err != nil {
		return nil, err
	}
	return []*HeapPage{p}, nil
}

func (hf *HeapFile) Iterator(txn *Transaction) *HeapFileIterator {
	return NewHeapFileIterator(hf, txn)
}
