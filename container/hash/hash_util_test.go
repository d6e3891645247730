package hash

import (
	"testing"

	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
	"github.com/ryogrid/SimpleHeapDB/types"
)

func TestHashValueIsStable(t *testing.T) {
	a := types.NewInteger(42)
	b := types.NewInteger(42)
	c := types.NewInteger(43)

	testingpkg.Equals(t, HashValue(&a), HashValue(&b))
	testingpkg.Assert(t, HashValue(&a) != HashValue(&c), "neighbouring integers should not collide")

	s1 := types.NewVarchar("abc")
	s2 := types.NewVarchar("abc")
	testingpkg.Equals(t, HashValue(&s1), HashValue(&s2))
}

func TestHashValuesOrderMatters(t *testing.T) {
	a := types.NewInteger(1)
	b := types.NewInteger(2)
	testingpkg.Assert(t, HashValues([]*types.Value{&a, &b}) != HashValues([]*types.Value{&b, &a}),
		"combined hash should depend on order")
}
