// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

// FileResolver maps a table id to its heap file. The catalog implements it.
type FileResolver interface {
	GetDatabaseFile(tableID types.TableID) (*access.HeapFile, error)
}

// BufferPoolManager caches heap pages of every table.
// Frames holding dirty pages are never evicted (no-steal), so only
// clean frames are registered in the replacer.
type BufferPoolManager struct {
	resolver  FileResolver
	pageSize  int
	pages     []*access.HeapPage
	replacer  *ClockReplacer
	freeList  []FrameID
	pageTable map[page.HeapPageID]FrameID
	mutex     *deadlock.Mutex
}

//NewBufferPoolManager returns a empty buffer pool manager
func NewBufferPoolManager(poolSize uint32, pageSize int, resolver FileResolver) *BufferPoolManager {
	freeList := make([]FrameID, poolSize)
	pages := make([]*access.HeapPage, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList[i] = FrameID(i)
		pages[i] = nil
	}

	replacer := NewClockReplacer(poolSize)
	return &BufferPoolManager{resolver, pageSize, pages, replacer, freeList, make(map[page.HeapPageID]FrameID), new(deadlock.Mutex)}
}

// SetResolver is used when the resolver is built after the pool
func (b *BufferPoolManager) SetResolver(resolver FileResolver) {
	b.resolver = resolver
}

func (b *BufferPoolManager) PageSize() int {
	return b.pageSize
}

func (b *BufferPoolManager) GetPoolSize() int {
	return len(b.pages)
}

// FetchPage returns the resident page or reads it from its heap file.
func (b *BufferPoolManager) FetchPage(txn *access.Transaction, pid page.HeapPageID, perm access.Permissions) (*access.HeapPage, error) {
	if txn != nil && txn.GetState() == access.ABORTED {
		return nil, fmt.Errorf("fetch %v by txn %d: %w", pid, txn.GetTransactionId(), errors.ErrTransactionAborted)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// if it is on buffer pool return it
	if frameID, ok := b.pageTable[pid]; ok {
		pg := b.pages[frameID]
		if !pg.IsDirty() {
			b.replacer.Unpin(frameID)
		}
		return pg, nil
	}

	// get the id from free list or from replacer
	frameID, isFromFreeList := b.getFrameID()
	if frameID == nil {
		common.ShPrintf(common.WARN, "BufferPoolManager::FetchPage: no evictable frame for %v\n", pid)
		return nil, fmt.Errorf("fetch %v: %w", pid, errors.ErrNoEvictablePage)
	}

	if !isFromFreeList {
		// victims are clean, nothing to write back
		currentPage := b.pages[*frameID]
		if currentPage != nil {
			delete(b.pageTable, currentPage.GetID())
			b.pages[*frameID] = nil
		}
	}

	hf, err := b.resolver.GetDatabaseFile(pid.GetTableID())
	if err == nil {
		var pg *access.HeapPage
		pg, err = hf.ReadPage(pid)
		if err == nil {
			b.pageTable[pid] = *frameID
			b.pages[*frameID] = pg
			b.replacer.Unpin(*frameID)
			return pg, nil
		}
	}

	b.freeList = append(b.freeList, *frameID)
	return nil, err
}

// InsertTuple adds t to the table and marks the page it landed on dirty for txn
func (b *BufferPoolManager) InsertTuple(txn *access.Transaction, tableID types.TableID, t *tuple.Tuple) error {
	common.ShPrintf(common.RDB_OP_FUNC_CALL, "BufferPoolManager::InsertTuple called. txn:%d table:%d\n", txn.GetTransactionId(), tableID)
	hf, err := b.resolver.GetDatabaseFile(tableID)
	if err != nil {
		return err
	}
	dirtied, err := hf.InsertTuple(txn, t)
	if err != nil {
		return err
	}
	b.markDirty(txn, dirtied)
	return nil
}

// DeleteTuple removes t, located by its RID, and marks the page dirty for txn
func (b *BufferPoolManager) DeleteTuple(txn *access.Transaction, t *tuple.Tuple) error {
	common.ShPrintf(common.RDB_OP_FUNC_CALL, "BufferPoolManager::DeleteTuple called. txn:%d rid:%v\n", txn.GetTransactionId(), t.GetRID())
	rid := t.GetRID()
	if rid == nil {
		return fmt.Errorf("delete tuple without rid: %w", errors.ErrRecordNotOnPage)
	}
	hf, err := b.resolver.GetDatabaseFile(rid.GetPageId().GetTableID())
	if err != nil {
		return err
	}
	dirtied, err := hf.DeleteTuple(txn, t)
	if err != nil {
		return err
	}
	b.markDirty(txn, dirtied)
	return nil
}

func (b *BufferPoolManager) markDirty(txn *access.Transaction, dirtied []*access.HeapPage) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, pg := range dirtied {
		pg.MarkDirty(true, txn.GetTransactionId())
		txn.AddIntoDirtyPageSet(pg.GetID())
		if frameID, ok := b.pageTable[pg.GetID()]; ok {
			b.replacer.Pin(frameID)
		} else {
			common.ShPrintf(common.WARN, "BufferPoolManager::markDirty: %v is not resident\n", pg.GetID())
		}
	}
}

// TransactionComplete writes the pages txn dirtied on commit and restores
// their before-images on abort.
func (b *BufferPoolManager) TransactionComplete(txn *access.Transaction, commit bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, pid := range txn.GetDirtyPageSet().ToSlice() {
		frameID, ok := b.pageTable[pid]
		if !ok {
			continue
		}
		pg := b.pages[frameID]
		if !pg.IsDirty() {
			continue
		}

		if commit {
			if err := b.flushFrame(frameID); err != nil {
				return err
			}
			pg.SetBeforeImage()
			continue
		}

		old, err := pg.GetBeforeImage()
		if err != nil {
			return err
		}
		b.pages[frameID] = old
		b.replacer.Unpin(frameID)
	}
	return nil
}

// flushFrame writes a dirty frame and makes it evictable again
func (b *BufferPoolManager) flushFrame(frameID FrameID) error {
	pg := b.pages[frameID]
	if !pg.IsDirty() {
		return nil
	}
	hf, err := b.resolver.GetDatabaseFile(pg.GetID().GetTableID())
	if err != nil {
		return err
	}
	if err = hf.WritePage(pg); err != nil {
		return err
	}
	pg.MarkDirty(false, types.InvalidTxnID)
	b.replacer.Unpin(frameID)
	return nil
}

// FlushPage Flushes the target page to disk.
func (b *BufferPoolManager) FlushPage(pid page.HeapPageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if frameID, ok := b.pageTable[pid]; ok {
		return b.flushFrame(frameID)
	}
	return nil
}

// FlushAllPages flushes all the pages in the buffer pool to disk.
func (b *BufferPoolManager) FlushAllPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, frameID := range b.pageTable {
		if err := b.flushFrame(frameID); err != nil {
			return err
		}
	}
	return nil
}

// DiscardPage drops the page from the pool without writing it
func (b *BufferPoolManager) DiscardPage(pid page.HeapPageID) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[pid]
	if !ok {
		return
	}
	delete(b.pageTable, pid)
	b.pages[frameID] = nil
	b.replacer.Pin(frameID)
	b.freeList = append(b.freeList, frameID)
}

// IsResident reports whether pid currently occupies a frame
func (b *BufferPoolManager) IsResident(pid page.HeapPageID) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	_, ok := b.pageTable[pid]
	return ok
}

func (b *BufferPoolManager) getFrameID() (*FrameID, bool) {
	if len(b.freeList) > 0 {
		frameID, newFreeList := b.freeList[0], b.freeList[1:]
		b.freeList = newFreeList

		return &frameID, true
	}

	return b.replacer.Victim(), false
}
