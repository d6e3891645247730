package types

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
)

func TestIntegerEncoding(t *testing.T) {
	v := NewInteger(0x01020304)
	data := v.Serialize()
	testingpkg.Equals(t, []byte{1, 2, 3, 4}, data)

	decoded, err := NewValueFromBytes(data, Integer)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, decoded.CompareEquals(v))

	neg := NewInteger(-7)
	decoded, err = NewValueFromBytes(neg.Serialize(), Integer)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(-7), decoded.ToInteger())
}

func TestVarcharEncoding(t *testing.T) {
	v := NewVarchar("hello")
	data := v.Serialize()
	testingpkg.Equals(t, int(4+common.StringMaxLength), len(data))
	testingpkg.Equals(t, []byte{0, 0, 0, 5}, data[:4])
	for _, b := range data[4+5:] {
		testingpkg.Equals(t, byte(0), b)
	}

	decoded, err := NewValueFromBytes(data, Varchar)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "hello", decoded.ToVarchar())

	long := NewVarchar(strings.Repeat("x", common.StringMaxLength+10))
	testingpkg.Equals(t, common.StringMaxLength, len(long.ToVarchar()))
}

func TestVarcharTruncationKeepsWholeRunes(t *testing.T) {
	// the 3 byte rune starts at byte StringMaxLength-1 and cannot fit
	s := strings.Repeat("a", common.StringMaxLength-1) + "\u3042" + "tail"
	v := NewVarchar(s)
	testingpkg.Equals(t, common.StringMaxLength-1, len(v.ToVarchar()))
	testingpkg.SimpleAssert(t, utf8.ValidString(v.ToVarchar()))

	exact := strings.Repeat("a", common.StringMaxLength-3) + "\u3042" + "b"
	v = NewVarchar(exact)
	testingpkg.Equals(t, common.StringMaxLength, len(v.ToVarchar()))
	testingpkg.SimpleAssert(t, utf8.ValidString(v.ToVarchar()))

	decoded, err := NewValueFromBytes(NewVarchar(s).Serialize(), Varchar)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, strings.Repeat("a", common.StringMaxLength-1), decoded.ToVarchar())
}

func TestMalformedBytes(t *testing.T) {
	_, err := NewValueFromBytes([]byte{1, 2}, Integer)
	testingpkg.ErrorIs(t, err, errors.ErrCorruptPage)

	bad := make([]byte, Varchar.Size())
	bad[0] = 0x7f
	_, err = NewValueFromBytes(bad, Varchar)
	testingpkg.ErrorIs(t, err, errors.ErrCorruptPage)
}

func TestCompare(t *testing.T) {
	one, two := NewInteger(1), NewInteger(2)
	testingpkg.Assert(t, one.CompareLessThan(two), "1 < 2")
	testingpkg.Assert(t, one.CompareLessThanOrEqual(one), "1 <= 1")
	testingpkg.Assert(t, two.CompareGreaterThan(one), "2 > 1")
	testingpkg.Assert(t, one.CompareNotEquals(two), "1 != 2")
	testingpkg.AssertFalse(t, one.CompareEquals(NewVarchar("1")), "types differ")

	abc := NewVarchar("abcdef")
	testingpkg.Assert(t, abc.CompareLike(NewVarchar("cde")), "substring should match")
	testingpkg.AssertFalse(t, abc.CompareLike(NewVarchar("xyz")), "substring should not match")
}
