package disk

import (
	"fmt"

	"github.com/dsnet/golib/memfile"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

// VirtualDiskManagerImpl keeps the whole file in memory
type VirtualDiskManagerImpl struct {
	db          *memfile.File
	fileName    string
	numWrites   uint64
	size        int64
	dbFileMutex *deadlock.Mutex
}

func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	file := memfile.New(make([]byte, 0))
	return &VirtualDiskManagerImpl{file, dbFilename, 0, 0, new(deadlock.Mutex)}
}

// NewVirtualDiskManagerFromBytes starts from an existing image, e.g. a truncated file
func NewVirtualDiskManagerFromBytes(dbFilename string, data []byte) DiskManager {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &VirtualDiskManagerImpl{memfile.New(buf), dbFilename, 0, int64(len(buf)), new(deadlock.Mutex)}
}

// ShutDown closes of the database file
func (d *VirtualDiskManagerImpl) ShutDown() {
	// do nothing
}

// Write a page to the database file
func (d *VirtualDiskManagerImpl) WritePage(pageId types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageId) * int64(len(pageData))
	n, err := d.db.WriteAt(pageData, offset)
	if err != nil || n != len(pageData) {
		return fmt.Errorf("write page %d: %d bytes written: %v: %w", pageId, n, err, errors.ErrStorageIOFailure)
	}

	if offset+int64(n) > d.size {
		d.size = offset + int64(n)
	}
	d.numWrites++
	return nil
}

// Read a page from the database file. A trailing partial page is zero filled.
func (d *VirtualDiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(len(pageData))
	if pageID < 0 || offset >= d.size {
		return fmt.Errorf("read page %d: I/O error past end of file: %w", pageID, errors.ErrStorageIOFailure)
	}

	n := copy(pageData, d.db.Bytes()[offset:d.size])
	for i := n; i < len(pageData); i++ {
		pageData[i] = 0
	}
	return nil
}

// GetNumWrites returns the number of disk writes
func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numWrites
}

// Size returns the size of the file in disk
func (d *VirtualDiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *VirtualDiskManagerImpl) RemoveDBFile() {
	// do nothing
}
