package page

import "fmt"

// RID is the record identifier for the given page identifier and slot number
type RID struct {
	pageId  HeapPageID
	slotNum uint32
}

func NewRID(pageId HeapPageID, slot uint32) *RID {
	return &RID{pageId, slot}
}

// Set sets the recod identifier
func (r *RID) Set(pageId HeapPageID, slot uint32) {
	r.pageId = pageId
	r.slotNum = slot
}

// GetPageId gets the page id
func (r *RID) GetPageId() HeapPageID {
	return r.pageId
}

// GetSlotNum gets the slot number
func (r *RID) GetSlotNum() uint32 {
	return r.slotNum
}

func (r *RID) Equals(other *RID) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.pageId == other.pageId && r.slotNum == other.slotNum
}

func (r *RID) String() string {
	return fmt.Sprintf("RID(%d, %d, %d)", r.pageId.tableID, r.pageId.pageNo, r.slotNum)
}
