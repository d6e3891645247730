package access

import (
	"fmt"
	"math/bits"

	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * Slotted heap page format:
 *  ---------------------------------------------------------------
 * | HEADER | SLOT 0 | SLOT 1 | ... | SLOT numSlots-1 | ZERO PAD  |
 *  ---------------------------------------------------------------
 *
 * HEADER is ceil(numSlots/8) bytes, bit (i%8) of byte i/8 is set
 * when slot i holds a tuple. Each slot is schema.Length() bytes.
 * Unused slots and the tail are zero. Page id and schema are not stored.
 */
type HeapPage struct {
	pid      page.HeapPageID
	schema   *schema.Schema
	pageSize int
	numSlots int
	header   []byte
	tuples   []*tuple.Tuple
	isDirty  bool
	dirtier  types.TxnID
	// page image at load or last checkpoint
	oldData []byte
}

// GetNumSlotsOf returns how many tuples of tupleSize bytes fit a page,
// counting one header bit per tuple
func GetNumSlotsOf(pageSize int, tupleSize uint32) int {
	if tupleSize == 0 {
		return 0
	}
	return (pageSize * 8) / (int(tupleSize)*8 + 1)
}

func getHeaderSize(numSlots int) int {
	return (numSlots + 7) / 8
}

// CreateEmptyPageData returns the image of a page without tuples
func CreateEmptyPageData(pageSize int) []byte {
	return make([]byte, pageSize)
}

// NewHeapPage decodes a page image. len(data) is the page size.
func NewHeapPage(pid page.HeapPageID, schema_ *schema.Schema, data []byte) (*HeapPage, error) {
	p := &HeapPage{
		pid:      pid,
		schema:   schema_,
		pageSize: len(data),
		numSlots: GetNumSlotsOf(len(data), schema_.Length()),
		dirtier:  types.InvalidTxnID,
	}
	headerSize := getHeaderSize(p.numSlots)
	p.header = make([]byte, headerSize)
	copy(p.header, data[:headerSize])
	p.tuples = make([]*tuple.Tuple, p.numSlots)

	tupleSize := int(schema_.Length())
	for i := 0; i < p.numSlots; i++ {
		if !p.IsSlotUsed(i) {
			continue
		}
		offset := headerSize + i*tupleSize
		t, err := tuple.NewTupleFromBytes(schema_, data[offset:offset+tupleSize])
		if err != nil {
			return nil, fmt.Errorf("%v slot %d: %w", pid, i, err)
		}
		t.SetRID(page.NewRID(pid, uint32(i)))
		p.tuples[i] = t
	}

	p.oldData = make([]byte, len(data))
	copy(p.oldData, data)
	return p, nil
}

func NewEmptyHeapPage(pid page.HeapPageID, schema_ *schema.Schema, pageSize int) *HeapPage {
	p, err := NewHeapPage(pid, schema_, CreateEmptyPageData(pageSize))
	if err != nil {
		// zero image never fails to decode
		panic(err)
	}
	return p
}

func (p *HeapPage) GetID() page.HeapPageID {
	return p.pid
}

func (p *HeapPage) GetSchema() *schema.Schema {
	return p.schema
}

func (p *HeapPage) GetNumSlots() int {
	return p.numSlots
}

// GetPageData encodes the page into exactly pageSize bytes
func (p *HeapPage) GetPageData() []byte {
	data := make([]byte, p.pageSize)
	copy(data, p.header)

	headerSize := len(p.header)
	tupleSize := int(p.schema.Length())
	for i, t := range p.tuples {
		if t == nil {
			continue
		}
		offset := headerSize + i*tupleSize
		// tuples are checked on insert, so this cannot fail
		if err := t.SerializeTo(data[offset : offset+tupleSize]); err != nil {
			panic(err)
		}
	}
	return data
}

func (p *HeapPage) IsSlotUsed(i int) bool {
	if i < 0 || i >= p.numSlots {
		return false
	}
	return p.header[i/8]&(1<<(uint(i)%8)) != 0
}

func (p *HeapPage) markSlotUsed(i int, used bool) {
	if used {
		p.header[i/8] |= 1 << (uint(i) % 8)
	} else {
		p.header[i/8] &^= 1 << (uint(i) % 8)
	}
}

// GetNumEmptySlots ignores header bits at or beyond numSlots
func (p *HeapPage) GetNumEmptySlots() int {
	used := 0
	for i, b := range p.header {
		if rest := p.numSlots - i*8; rest < 8 {
			b &= byte(1<<uint(rest)) - 1
		}
		used += bits.OnesCount8(b)
	}
	return p.numSlots - used
}

// InsertTuple stores t in the lowest free slot and sets the RID of t
func (p *HeapPage) InsertTuple(t *tuple.Tuple) error {
	if !p.schema.Equals(t.GetSchema()) {
		return fmt.Errorf("insert into %v: %w", p.pid, errors.ErrSchemaMismatch)
	}
	for i := uint32(0); i < p.schema.GetColumnCount(); i++ {
		if !t.IsSet(i) {
			return fmt.Errorf("insert into %v: field %d is not set: %w", p.pid, i, errors.ErrSchemaMismatch)
		}
	}

	slot := -1
	for i := 0; i < p.numSlots; i++ {
		if !p.IsSlotUsed(i) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("insert into %v: %w", p.pid, errors.ErrPageFull)
	}

	p.markSlotUsed(slot, true)
	stored := t.WithSchema(p.schema)
	stored.SetRID(page.NewRID(p.pid, uint32(slot)))
	p.tuples[slot] = stored
	t.SetRID(page.NewRID(p.pid, uint32(slot)))
	return nil
}

// DeleteTuple frees the slot addressed by the RID of t and clears that RID
func (p *HeapPage) DeleteTuple(t *tuple.Tuple) error {
	rid := t.GetRID()
	if rid == nil || rid.GetPageId() != p.pid {
		return fmt.Errorf("delete from %v: rid %v: %w", p.pid, rid, errors.ErrRecordNotOnPage)
	}
	slot := int(rid.GetSlotNum())
	if slot >= p.numSlots || !p.IsSlotUsed(slot) {
		return fmt.Errorf("delete from %v: slot %d: %w", p.pid, slot, errors.ErrInvalidSlot)
	}

	p.markSlotUsed(slot, false)
	p.tuples[slot] = nil
	t.SetRID(nil)
	return nil
}

func (p *HeapPage) GetTuple(slot int) *tuple.Tuple {
	if !p.IsSlotUsed(slot) {
		return nil
	}
	return p.tuples[slot]
}

// MarkDirty records which transaction dirtied the page. dirty=false clears it.
func (p *HeapPage) MarkDirty(dirty bool, txnID types.TxnID) {
	p.isDirty = dirty
	if dirty {
		p.dirtier = txnID
	} else {
		p.dirtier = types.InvalidTxnID
	}
}

func (p *HeapPage) IsDirty() bool {
	return p.isDirty
}

// GetDirtier returns InvalidTxnID when the page is clean
func (p *HeapPage) GetDirtier() types.TxnID {
	return p.dirtier
}

// GetBeforeImage decodes the image taken at load or at the last SetBeforeImage
func (p *HeapPage) GetBeforeImage() (*HeapPage, error) {
	return NewHeapPage(p.pid, p.schema, p.oldData)
}

// SetBeforeImage checkpoints the current content as the rollback image
func (p *HeapPage) SetBeforeImage() {
	p.oldData = p.GetPageData()
}

// Iterator walks the live tuples in slot order. Each call starts over.
func (p *HeapPage) Iterator() *HeapPageIterator {
	live := make([]*tuple.Tuple, 0, p.numSlots-p.GetNumEmptySlots())
	for i, t := range p.tuples {
		if t != nil && p.IsSlotUsed(i) {
			live = append(live, t)
		}
	}
	return &HeapPageIterator{live, 0}
}

type HeapPageIterator struct {
	tuples []*tuple.Tuple
	cursor int
}

func (it *HeapPageIterator) HasNext() bool {
	return it.cursor < len(it.tuples)
}

// Next returns nil at the end
func (it *HeapPageIterator) Next() *tuple.Tuple {
	if !it.HasNext() {
		return nil
	}
	t := it.tuples[it.cursor]
	it.cursor++
	return t
}
