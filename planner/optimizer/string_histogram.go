package optimizer

import (
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
)

// StringHistogram maps strings to integers from their first four bytes and
// keeps an IntHistogram over the domain ["", "zzzz"].
type StringHistogram struct {
	hist *IntHistogram
}

// integer images of "" and "zzzz"
const (
	stringHistMin int32 = 0
	stringHistMax int32 = 0x7a7a7a7a
)

func NewStringHistogram(buckets int, policy string) *StringHistogram {
	return &StringHistogram{NewIntHistogramWithPolicy(buckets, stringHistMin, stringHistMax, policy)}
}

// stringToInt packs up to four leading bytes big-endian and clamps into the domain
func stringToInt(s string) int32 {
	var v int64
	for k := 0; k < 4; k++ {
		if k < len(s) {
			v += int64(s[k]) << (8 * (3 - k))
		}
	}
	if v < int64(stringHistMin) {
		v = int64(stringHistMin)
	}
	if v > int64(stringHistMax) {
		v = int64(stringHistMax)
	}
	return int32(v)
}

func (h *StringHistogram) AddValue(s string) {
	h.hist.AddValue(stringToInt(s))
}

// EstimateSelectivity estimates "value op s". LIKE is not estimated and yields 1.0.
func (h *StringHistogram) EstimateSelectivity(op expression.ComparisonType, s string) float64 {
	if op == expression.Like {
		return 1.0
	}
	return h.hist.EstimateSelectivity(op, stringToInt(s))
}

func (h *StringHistogram) Total() int64 {
	return h.hist.Total()
}

func (h *StringHistogram) String() string {
	return h.hist.String()
}
