// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"fmt"
	"io"
	"os"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

// DiskManagerImpl is the disk implementation of DiskManager.
// Every ReadPage/WritePage opens its own handle, does one seek and one
// transfer, and closes the handle again.
type DiskManagerImpl struct {
	fileName  string
	numWrites uint64
	mutex     deadlock.Mutex
}

// NewDiskManagerImpl returns a DiskManager instance. The file is created when missing.
func NewDiskManagerImpl(dbFilename string) (DiskManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", dbFilename, err, errors.ErrStorageIOFailure)
	}
	file.Close()
	return &DiskManagerImpl{fileName: dbFilename}, nil
}

// ShutDown is a no-op because no handle outlives a call
func (d *DiskManagerImpl) ShutDown() {
}

// Write a page to the database file
func (d *DiskManagerImpl) WritePage(pageId types.PageID, pageData []byte) error {
	file, err := os.OpenFile(d.fileName, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("write page %d: %v: %w", pageId, err, errors.ErrStorageIOFailure)
	}
	defer file.Close()

	offset := int64(pageId) * int64(len(pageData))
	if _, err = file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("write page %d: %v: %w", pageId, err, errors.ErrStorageIOFailure)
	}
	bytesWritten, err := file.Write(pageData)
	if err != nil {
		return fmt.Errorf("write page %d: %v: %w", pageId, err, errors.ErrStorageIOFailure)
	}
	if bytesWritten != len(pageData) {
		return fmt.Errorf("write page %d: %d of %d bytes written: %w", pageId, bytesWritten, len(pageData), errors.ErrStorageIOFailure)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("sync page %d: %v: %w", pageId, err, errors.ErrStorageIOFailure)
	}

	d.mutex.Lock()
	d.numWrites++
	d.mutex.Unlock()
	return nil
}

// Read a page from the database file. A trailing partial page is zero filled.
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	file, err := os.Open(d.fileName)
	if err != nil {
		return fmt.Errorf("read page %d: %v: %w", pageID, err, errors.ErrStorageIOFailure)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("read page %d: %v: %w", pageID, err, errors.ErrStorageIOFailure)
	}

	offset := int64(pageID) * int64(len(pageData))
	if pageID < 0 || offset >= fileInfo.Size() {
		return fmt.Errorf("read page %d: I/O error past end of file: %w", pageID, errors.ErrStorageIOFailure)
	}

	if _, err = file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("read page %d: %v: %w", pageID, err, errors.ErrStorageIOFailure)
	}

	bytesRead, err := io.ReadFull(file, pageData)
	if err == io.ErrUnexpectedEOF {
		common.ShPrintf(common.DEBUG_INFO, "ReadPage: partial page %d (%d bytes) in %s\n", pageID, bytesRead, d.fileName)
		for i := bytesRead; i < len(pageData); i++ {
			pageData[i] = 0
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read page %d: %v: %w", pageID, err, errors.ErrStorageIOFailure)
	}
	return nil
}

// GetNumWrites returns the number of disk writes
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numWrites
}

// Size returns the size of the file in disk
func (d *DiskManagerImpl) Size() int64 {
	fileInfo, err := os.Stat(d.fileName)
	if err != nil {
		return 0
	}
	return fileInfo.Size()
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *DiskManagerImpl) RemoveDBFile() {
	os.Remove(d.fileName)
}
