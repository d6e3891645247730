// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"math"
	"strings"

	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
)

type Schema struct {
	length  uint32           // Fixed-length column size, i.e. the number of bytes used by one tuple
	columns []*column.Column // All the columns in the schema
}

func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}

	var currentOffset uint32
	for i := uint32(0); i < uint32(len(columns)); i++ {
		column := columns[i]
		column.SetOffset(currentOffset)
		currentOffset += column.FixedLength()

		schema.columns = append(schema.columns, column)
	}
	schema.length = currentOffset
	return schema
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) Length() uint32 {
	return s.length
}

func (s *Schema) GetColIndex(columnName string) uint32 {
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i
		}
	}

	return math.MaxUint32
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

func (s *Schema) IsHaveColumn(columnName *string) bool {
	for _, col := range s.columns {
		if col.GetColumnName() == *columnName {
			return true
		}
	}
	return false
}

// Equals compares arity and the type at each position. Names are ignored.
func (s *Schema) Equals(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.columns) != len(other.columns) {
		return false
	}
	for i, col := range s.columns {
		if col.GetType() != other.columns[i].GetType() {
			return false
		}
	}
	return true
}

// Merge concatenates the columns of a and b
func Merge(a *Schema, b *Schema) *Schema {
	cols := make([]*column.Column, 0, len(a.columns)+len(b.columns))
	for _, col := range a.columns {
		cols = append(cols, col.WithName(col.GetColumnName()))
	}
	for _, col := range b.columns {
		cols = append(cols, col.WithName(col.GetColumnName()))
	}
	return NewSchema(cols)
}

// WithAlias returns a schema whose column names are "alias.name".
// An empty alias keeps the names as they are.
func (s *Schema) WithAlias(alias string) *Schema {
	cols := make([]*column.Column, 0, len(s.columns))
	for _, col := range s.columns {
		name := col.GetColumnName()
		if alias != "" {
			name = alias + "." + name
		}
		cols = append(cols, col.WithName(name))
	}
	return NewSchema(cols)
}

func (s *Schema) String() string {
	parts := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		parts = append(parts, col.GetType().String()+"("+col.GetColumnName()+")")
	}
	return strings.Join(parts, ", ")
}
