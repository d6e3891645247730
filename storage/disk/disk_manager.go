package disk

import (
	"github.com/ryogrid/SimpleHeapDB/types"
)

// DiskManager is the backing store of one heap file.
// Page pageNo occupies bytes [pageNo*len(pageData), (pageNo+1)*len(pageData)).
type DiskManager interface {
	ReadPage(types.PageID, []byte) error
	WritePage(types.PageID, []byte) error
	GetNumWrites() uint64
	ShutDown()
	Size() int64
	RemoveDBFile()
}
