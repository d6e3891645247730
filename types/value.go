// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
)

// A value is an class that represents a view over SQL data stored in
// some materialized state. All values have a type and comparison functions,
// and implement other type-specific functionality.
type Value struct {
	valueType TypeID
	integer   *int32
	boolean   *bool
	varchar   *string
}

func NewInteger(value int32) Value {
	return Value{Integer, &value, nil, nil}
}

func NewBoolean(value bool) Value {
	return Value{Boolean, nil, &value, nil}
}

// NewVarchar keeps at most StringMaxLength bytes of value, cutting before
// a rune that would not fit whole
func NewVarchar(value string) Value {
	if len(value) > common.StringMaxLength {
		cut := common.StringMaxLength
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut]
	}
	return Value{Varchar, nil, nil, &value}
}

// NewValueFromBytes is used for deserialization.
// data must hold at least valueType.Size() bytes.
func NewValueFromBytes(data []byte, valueType TypeID) (*Value, error) {
	if uint32(len(data)) < valueType.Size() || valueType == Invalid {
		return nil, fmt.Errorf("decode %v from %d bytes: %w", valueType, len(data), errors.ErrCorruptPage)
	}
	switch valueType {
	case Integer:
		v := NewInteger(int32(binary.BigEndian.Uint32(data)))
		return &v, nil
	case Varchar:
		length := int32(binary.BigEndian.Uint32(data))
		if length < 0 || length > common.StringMaxLength {
			return nil, fmt.Errorf("varchar length %d: %w", length, errors.ErrCorruptPage)
		}
		v := NewVarchar(string(data[4 : 4+length]))
		return &v, nil
	case Boolean:
		v := NewBoolean(data[0] != 0)
		return &v, nil
	}
	return nil, fmt.Errorf("unknown type %d: %w", valueType, errors.ErrCorruptPage)
}

// Serialize returns the fixed-width encoding of the value.
// Integer is 4 bytes big endian. Varchar is a 4 byte big endian length
// followed by StringMaxLength bytes, zero padded.
func (v Value) Serialize() []byte {
	buf := make([]byte, v.valueType.Size())
	switch v.valueType {
	case Integer:
		binary.BigEndian.PutUint32(buf, uint32(*v.integer))
	case Varchar:
		binary.BigEndian.PutUint32(buf, uint32(len(*v.varchar)))
		copy(buf[4:], *v.varchar)
	case Boolean:
		if *v.boolean {
			buf[0] = 1
		}
	}
	return buf
}

// Size returns the size in bytes that the type will occupy inside the tuple
func (v Value) Size() uint32 {
	return v.valueType.Size()
}

func (v Value) CompareEquals(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Varchar:
		return *v.varchar == *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	return !v.CompareEquals(right)
}

func (v Value) CompareGreaterThan(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer > *right.integer
	case Varchar:
		return *v.varchar > *right.varchar
	}
	return false
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer >= *right.integer
	case Varchar:
		return *v.varchar >= *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	}
	return false
}

func (v Value) CompareLessThan(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer < *right.integer
	case Varchar:
		return *v.varchar < *right.varchar
	}
	return false
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer <= *right.integer
	case Varchar:
		return *v.varchar <= *right.varchar
	case Boolean:
		return *v.boolean == *right.boolean
	}
	return false
}

// CompareLike is true when right occurs in v. Integer values fall back to equality.
func (v Value) CompareLike(right Value) bool {
	if v.valueType == Varchar && right.valueType == Varchar {
		return strings.Contains(*v.varchar, *right.varchar)
	}
	return v.CompareEquals(right)
}

func (v Value) ToBoolean() bool {
	return *v.boolean
}

func (v Value) ToInteger() int32 {
	return *v.integer
}

func (v Value) ToVarchar() string {
	return *v.varchar
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) Add(other *Value) *Value {
	switch v.valueType {
	case Integer:
		ret := NewInteger(*v.integer + *other.integer)
		return &ret
	default:
		panic("Add is implemented to Integer only.")
	}
}

func (v Value) Max(other *Value) *Value {
	switch v.valueType {
	case Integer:
		if *v.integer >= *other.integer {
			ret := NewInteger(*v.integer)
			return &ret
		}
		ret := NewInteger(other.ToInteger())
		return &ret
	default:
		panic("Max is implemented to Integer only.")
	}
}

func (v Value) Min(other *Value) *Value {
	switch v.valueType {
	case Integer:
		if *v.integer <= *other.integer {
			ret := NewInteger(*v.integer)
			return &ret
		}
		ret := NewInteger(other.ToInteger())
		return &ret
	default:
		panic("Min is implemented to Integer only.")
	}
}

// MinInteger and MaxInteger seed running MAX and MIN aggregates
func MinInteger() Value { return NewInteger(math.MinInt32) }
func MaxInteger() Value { return NewInteger(math.MaxInt32) }

func (v Value) String() string {
	switch v.valueType {
	case Integer:
		return fmt.Sprintf("%d", *v.integer)
	case Varchar:
		return *v.varchar
	case Boolean:
		return fmt.Sprintf("%t", *v.boolean)
	}
	return "<invalid>"
}
