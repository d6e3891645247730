// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"fmt"
	"strings"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * Tuple format (fixed width, schema.Length() bytes):
 * ---------------------------------------------
 * | FIELD 0 | FIELD 1 | ... | FIELD n-1       |
 * ---------------------------------------------
 * each field occupies column.FixedLength() bytes at column.GetOffset()
 */
type Tuple struct {
	rid    *page.RID
	schema *schema.Schema
	values []*types.Value
}

// NewTuple returns a tuple whose fields are all unset
func NewTuple(schema_ *schema.Schema) *Tuple {
	return &Tuple{nil, schema_, make([]*types.Value, schema_.GetColumnCount())}
}

// NewTupleFromSchema creates a new tuple based on input value
func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	common.SH_Assert(uint32(len(values)) == schema_.GetColumnCount(), "value count does not match schema")
	tuple_ := NewTuple(schema_)
	for i := range values {
		err := tuple_.SetValue(uint32(i), values[i])
		common.SH_Assert(err == nil, fmt.Sprintf("NewTupleFromSchema: %v", err))
	}
	return tuple_
}

// NewTupleFromBytes decodes one tuple slot
func NewTupleFromBytes(schema_ *schema.Schema, data []byte) (*Tuple, error) {
	if uint32(len(data)) < schema_.Length() {
		return nil, fmt.Errorf("tuple needs %d bytes, got %d: %w", schema_.Length(), len(data), errors.ErrCorruptPage)
	}
	tuple_ := NewTuple(schema_)
	for i, col := range schema_.GetColumns() {
		offset := col.GetOffset()
		val, err := types.NewValueFromBytes(data[offset:offset+col.FixedLength()], col.GetType())
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		tuple_.values[i] = val
	}
	return tuple_, nil
}

func (t *Tuple) GetSchema() *schema.Schema {
	return t.schema
}

func (t *Tuple) IsSet(colIndex uint32) bool {
	return colIndex < uint32(len(t.values)) && t.values[colIndex] != nil
}

func (t *Tuple) GetValue(colIndex uint32) types.Value {
	common.SH_Assert(t.IsSet(colIndex), fmt.Sprintf("field %d is not set", colIndex))
	return *t.values[colIndex]
}

// SetValue fails when colIndex is out of range or the value type differs from the column type
func (t *Tuple) SetValue(colIndex uint32, val types.Value) error {
	if colIndex >= t.schema.GetColumnCount() {
		return fmt.Errorf("set field %d of %d: %w", colIndex, t.schema.GetColumnCount(), errors.ErrInvalidField)
	}
	if colType := t.schema.GetColumn(colIndex).GetType(); colType != val.ValueType() {
		return fmt.Errorf("set field %d: %v into %v: %w", colIndex, val.ValueType(), colType, errors.ErrSchemaMismatch)
	}
	t.values[colIndex] = &val
	return nil
}

func (t *Tuple) GetRID() *page.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *page.RID) {
	t.rid = rid
}

// Size returns the encoded size in bytes
func (t *Tuple) Size() uint32 {
	return t.schema.Length()
}

// SerializeTo writes the fixed-width encoding of every field into storage
func (t *Tuple) SerializeTo(storage []byte) error {
	if uint32(len(storage)) < t.schema.Length() {
		return fmt.Errorf("tuple needs %d bytes, got %d: %w", t.schema.Length(), len(storage), errors.ErrCorruptPage)
	}
	for i, col := range t.schema.GetColumns() {
		if t.values[i] == nil {
			return fmt.Errorf("field %d is not set: %w", i, errors.ErrSchemaMismatch)
		}
		copy(storage[col.GetOffset():col.GetOffset()+col.FixedLength()], t.values[i].Serialize())
	}
	return nil
}

// GetDeepCopy copies the field slots and the RID. Values are immutable and shared.
func (t *Tuple) GetDeepCopy() *Tuple {
	ret := &Tuple{nil, t.schema, make([]*types.Value, len(t.values))}
	copy(ret.values, t.values)
	if t.rid != nil {
		ret.rid = page.NewRID(t.rid.GetPageId(), t.rid.GetSlotNum())
	}
	return ret
}

// WithSchema returns a copy bound to another schema of the same shape
func (t *Tuple) WithSchema(schema_ *schema.Schema) *Tuple {
	common.SH_Assert(t.schema.Equals(schema_), "WithSchema: schema shape differs")
	ret := t.GetDeepCopy()
	ret.schema = schema_
	return ret
}

// Equals compares schema shape and every field. RIDs are not compared.
func (t *Tuple) Equals(other *Tuple) bool {
	if !t.schema.Equals(other.schema) {
		return false
	}
	for i := range t.values {
		l, r := t.values[i], other.values[i]
		if l == nil || r == nil {
			if l != r {
				return false
			}
			continue
		}
		if !l.CompareEquals(*r) {
			return false
		}
	}
	return true
}

func (t *Tuple) String() string {
	parts := make([]string, 0, len(t.values))
	for _, v := range t.values {
		if v == nil {
			parts = append(parts, "null")
			continue
		}
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "\t")
}
