package schema

import (
	"testing"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
	"github.com/ryogrid/SimpleHeapDB/types"
)

func TestSchemaLengthAndOffsets(t *testing.T) {
	schema_ := NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer),
		column.NewColumn("b", types.Varchar),
		column.NewColumn("c", types.Integer),
	})

	testingpkg.Equals(t, uint32(4+4+common.StringMaxLength+4), schema_.Length())
	testingpkg.Equals(t, uint32(0), schema_.GetColumn(0).GetOffset())
	testingpkg.Equals(t, uint32(4), schema_.GetColumn(1).GetOffset())
	testingpkg.Equals(t, uint32(8+common.StringMaxLength), schema_.GetColumn(2).GetOffset())
	testingpkg.Equals(t, uint32(2), schema_.GetColIndex("c"))
}

func TestSchemaEqualsIgnoresNames(t *testing.T) {
	s1 := NewSchema([]*column.Column{column.NewColumn("a", types.Integer), column.NewColumn("b", types.Varchar)})
	s2 := NewSchema([]*column.Column{column.NewColumn("x", types.Integer), column.NewColumn("y", types.Varchar)})
	s3 := NewSchema([]*column.Column{column.NewColumn("a", types.Varchar), column.NewColumn("b", types.Integer)})
	s4 := NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})

	testingpkg.SimpleAssert(t, s1.Equals(s2))
	testingpkg.AssertFalse(t, s1.Equals(s3), "types differ by position")
	testingpkg.AssertFalse(t, s1.Equals(s4), "arity differs")
}

func TestMergeAndAlias(t *testing.T) {
	s1 := NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})
	s2 := NewSchema([]*column.Column{column.NewColumn("b", types.Varchar), column.NewColumn("c", types.Integer)})

	merged := Merge(s1, s2)
	testingpkg.Equals(t, uint32(3), merged.GetColumnCount())
	testingpkg.Equals(t, "b", merged.GetColumn(1).GetColumnName())
	testingpkg.Equals(t, s1.Length()+s2.Length(), merged.Length())
	// sources keep their own offsets
	testingpkg.Equals(t, uint32(0), s2.GetColumn(0).GetOffset())

	aliased := s2.WithAlias("t")
	testingpkg.Equals(t, "t.b", aliased.GetColumn(0).GetColumnName())
	testingpkg.Equals(t, "t.c", aliased.GetColumn(1).GetColumnName())
	testingpkg.SimpleAssert(t, aliased.Equals(s2))

	testingpkg.Equals(t, "b", s2.WithAlias("").GetColumn(0).GetColumnName())
}
