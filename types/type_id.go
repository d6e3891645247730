package types

import "github.com/ryogrid/SimpleHeapDB/common"

type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Integer
	Varchar
)

// Size returns the fixed number of bytes a value of the type occupies in a tuple slot
func (t TypeID) Size() uint32 {
	switch t {
	case Integer:
		return 4
	case Varchar:
		// length prefix + fixed payload
		return 4 + common.StringMaxLength
	case Boolean:
		return 1
	}
	return 0
}

func (t TypeID) String() string {
	switch t {
	case Integer:
		return "INT_TYPE"
	case Varchar:
		return "STRING_TYPE"
	case Boolean:
		return "BOOL_TYPE"
	}
	return "INVALID_TYPE"
}
