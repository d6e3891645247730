// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"testing"

	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/page"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
	"github.com/ryogrid/SimpleHeapDB/types"
)

func TestTuple(t *testing.T) {
	columnA := column.NewColumn("a", types.Integer)
	columnB := column.NewColumn("b", types.Varchar)
	columnC := column.NewColumn("c", types.Integer)
	columnD := column.NewColumn("d", types.Varchar)
	columnE := column.NewColumn("e", types.Varchar)

	schema_ := schema.NewSchema([]*column.Column{columnA, columnB, columnC, columnD, columnE})

	row := make([]types.Value, 0)

	expA, expB, expC, expD, expE := int32(99), "Hello World", int32(100), "áé&@#+\\çç", "blablablablabalbalalabalbalbalablablabalbalaba"
	row = append(row, types.NewInteger(expA))
	row = append(row, types.NewVarchar(expB))
	row = append(row, types.NewInteger(expC))
	row = append(row, types.NewVarchar(expD))
	row = append(row, types.NewVarchar(expE))
	tuple_ := NewTupleFromSchema(row, schema_)

	testingpkg.Equals(t, expA, tuple_.GetValue(0).ToInteger())
	testingpkg.Equals(t, expB, tuple_.GetValue(1).ToVarchar())
	testingpkg.Equals(t, expC, tuple_.GetValue(2).ToInteger())
	testingpkg.Equals(t, expD, tuple_.GetValue(3).ToVarchar())
	testingpkg.Equals(t, expE, tuple_.GetValue(4).ToVarchar())

	testingpkg.Equals(t, uint32(4+4+3*(4+128)), tuple_.Size())

	buf := make([]byte, tuple_.Size())
	testingpkg.Ok(t, tuple_.SerializeTo(buf))
	decoded, err := NewTupleFromBytes(schema_, buf)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, decoded.Equals(tuple_))
}

func TestSetValueChecksType(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})
	tuple_ := NewTuple(schema_)
	testingpkg.AssertFalse(t, tuple_.IsSet(0), "fields start unset")

	err := tuple_.SetValue(0, types.NewVarchar("x"))
	testingpkg.ErrorIs(t, err, errors.ErrSchemaMismatch)

	err = tuple_.SetValue(1, types.NewInteger(1))
	testingpkg.ErrorIs(t, err, errors.ErrInvalidField)

	// unset field cannot be encoded
	err = tuple_.SerializeTo(make([]byte, schema_.Length()))
	testingpkg.ErrorIs(t, err, errors.ErrSchemaMismatch)

	testingpkg.Ok(t, tuple_.SetValue(0, types.NewInteger(5)))
	testingpkg.Equals(t, int32(5), tuple_.GetValue(0).ToInteger())
}

func TestDeepCopyDetachesRID(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})
	tuple_ := NewTupleFromSchema([]types.Value{types.NewInteger(1)}, schema_)
	tuple_.SetRID(page.NewRID(page.NewHeapPageID(1, 0), 3))

	cp := tuple_.GetDeepCopy()
	testingpkg.SimpleAssert(t, cp.GetRID().Equals(tuple_.GetRID()))
	cp.SetRID(nil)
	testingpkg.Assert(t, tuple_.GetRID() != nil, "original RID must survive")

	aliased := tuple_.WithSchema(schema_.WithAlias("t"))
	testingpkg.Equals(t, "t.a", aliased.GetSchema().GetColumn(0).GetColumnName())
	testingpkg.SimpleAssert(t, aliased.Equals(tuple_))
}
