package page

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/ryogrid/SimpleHeapDB/container/hash"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// HeapPageID addresses one page of one table file.
// It is comparable and can be used as a map key directly.
type HeapPageID struct {
	tableID types.TableID
	pageNo  types.PageID
}

func NewHeapPageID(tableID types.TableID, pageNo types.PageID) HeapPageID {
	return HeapPageID{tableID, pageNo}
}

func (pid HeapPageID) GetTableID() types.TableID {
	return pid.tableID
}

func (pid HeapPageID) GetPageNo() types.PageID {
	return pid.pageNo
}

// Serialize returns tableID followed by pageNo, little endian
func (pid HeapPageID) Serialize() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf, uint32(pid.tableID))
	binary.LittleEndian.PutUint32(buf[4:], uint32(pid.pageNo))
	return buf
}

// Hash is a murmur3 hash over both components
func (pid HeapPageID) Hash() uint32 {
	return hash.GenHashMurMur(pid.Serialize())
}

// LegacyHash reproduces the hash of the decimal concatenation of table id
// and page number (java.lang.String#hashCode). Distinct ids such as 1/23 and
// 12/3 share a value, so it is only kept for compatibility checks.
func (pid HeapPageID) LegacyHash() int32 {
	s := strconv.Itoa(int(pid.tableID)) + strconv.Itoa(int(pid.pageNo))
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}
	return h
}

func (pid HeapPageID) Equals(other HeapPageID) bool {
	return pid == other
}

func (pid HeapPageID) String() string {
	return fmt.Sprintf("HeapPageID(%d, %d)", pid.tableID, pid.pageNo)
}
