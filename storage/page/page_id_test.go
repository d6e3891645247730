package page

import (
	"testing"

	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
)

func TestHeapPageIDAsMapKey(t *testing.T) {
	m := make(map[HeapPageID]int)
	m[NewHeapPageID(1, 2)] = 10
	m[NewHeapPageID(2, 1)] = 20

	testingpkg.Equals(t, 10, m[NewHeapPageID(1, 2)])
	testingpkg.Equals(t, 20, m[NewHeapPageID(2, 1)])
	testingpkg.Equals(t, 2, len(m))
}

func TestLegacyHashCollidesButHashDoesNot(t *testing.T) {
	a := NewHeapPageID(1, 23)
	b := NewHeapPageID(12, 3)

	testingpkg.AssertFalse(t, a.Equals(b), "ids should differ")
	// "123" for both
	testingpkg.Equals(t, a.LegacyHash(), b.LegacyHash())
	testingpkg.Equals(t, int32(48690), a.LegacyHash())
	testingpkg.Assert(t, a.Hash() != b.Hash(), "composite hash collided for %v and %v", a, b)
	testingpkg.Equals(t, a.Hash(), NewHeapPageID(1, 23).Hash())
}
