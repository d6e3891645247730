package optimizer

import (
	"testing"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	testingpkg "github.com/ryogrid/SimpleHeapDB/testing/testing_assert"
)

const delta = 1e-9

func newHundredValuesHistogram(policy string) *IntHistogram {
	h := NewIntHistogramWithPolicy(10, 0, 100, policy)
	for v := int32(0); v < 100; v++ {
		h.AddValue(v)
	}
	return h
}

func TestIntHistogramConcreteExample(t *testing.T) {
	h := newHundredValuesHistogram(common.BoundaryPolicyStrict)
	testingpkg.Equals(t, int64(100), h.Total())

	testingpkg.InDelta(t, 0.1, h.EstimateSelectivity(expression.Equal, 50), delta)
	testingpkg.InDelta(t, 0.05, h.EstimateSelectivity(expression.GreaterThan, 95), delta)
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.LessThan, 0))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.GreaterThan, 100))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.Equal, 150))
}

func TestIntHistogramLegacyBoundary(t *testing.T) {
	h := newHundredValuesHistogram(common.BoundaryPolicyLegacy)
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.GreaterThan, 100))
	// every other output is shared with the strict policy
	testingpkg.InDelta(t, 0.05, h.EstimateSelectivity(expression.GreaterThan, 95), delta)
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.LessThan, 0))
}

func TestIntHistogramRanges(t *testing.T) {
	h := newHundredValuesHistogram(common.BoundaryPolicyStrict)

	testingpkg.Equals(t, 0, h.GetBinIndex(0))
	testingpkg.Equals(t, 9, h.GetBinIndex(99))
	testingpkg.Equals(t, 9, h.GetBinIndex(100))
	testingpkg.Equals(t, belowRange, h.GetBinIndex(-1))
	testingpkg.Equals(t, aboveRange, h.GetBinIndex(101))

	testingpkg.InDelta(t, 0.5, h.EstimateSelectivity(expression.LessThan, 50), delta)
	testingpkg.InDelta(t, 0.55, h.EstimateSelectivity(expression.LessThanOrEqual, 55), delta)
	testingpkg.InDelta(t, 1.0, h.EstimateSelectivity(expression.GreaterThanOrEqual, 0), delta)
	testingpkg.InDelta(t, 0.9, h.EstimateSelectivity(expression.NotEqual, 50), delta)

	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.GreaterThan, -5))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.GreaterThanOrEqual, -5))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.LessThanOrEqual, -5))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.LessThan, 200))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.GreaterThanOrEqual, 200))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.NotEqual, 150))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.Like, 3))

	// out of range values are not counted
	h.AddValue(1000)
	testingpkg.Equals(t, int64(100), h.Total())
}

func TestIntHistogramDegenerateAndEmpty(t *testing.T) {
	h := NewIntHistogram(10, 5, 5)
	for i := 0; i < 3; i++ {
		h.AddValue(5)
	}
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.Equal, 5))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.GreaterThanOrEqual, 5))
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.LessThanOrEqual, 5))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.GreaterThan, 5))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.LessThan, 5))

	empty := NewIntHistogram(10, 0, 0)
	testingpkg.Equals(t, 0.0, empty.EstimateSelectivity(expression.Equal, 0))
	testingpkg.Equals(t, 0.0, empty.EstimateSelectivity(expression.GreaterThanOrEqual, 0))
	testingpkg.Equals(t, 1.0, empty.EstimateSelectivity(expression.LessThan, 5))
}

func TestStringHistogram(t *testing.T) {
	h := NewStringHistogram(common.NumHistBins, common.BoundaryPolicyStrict)
	for _, s := range []string{"apple", "banana", "cherry", "banana"} {
		h.AddValue(s)
	}
	testingpkg.Equals(t, int64(4), h.Total())
	testingpkg.InDelta(t, 0.5, h.EstimateSelectivity(expression.Equal, "banana"), delta)
	testingpkg.Equals(t, 1.0, h.EstimateSelectivity(expression.Like, "an"))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.GreaterThan, "zzzz"))
	testingpkg.Equals(t, 0.0, h.EstimateSelectivity(expression.LessThan, ""))

	testingpkg.Equals(t, int32(0x61626364), stringToInt("abcdef"))
	testingpkg.Equals(t, stringHistMax, stringToInt("~~~~"))
	testingpkg.Equals(t, stringHistMin, stringToInt(""))
}
