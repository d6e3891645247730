package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
)

const (
	belowRange = -1
	aboveRange = -2
)

/**
 * IntHistogram is a fixed-width histogram over a single integer field.
 * Space and time per value are constant: raw values are never stored.
 */
type IntHistogram struct {
	buckets int
	min     int32
	max     int32
	width   float64
	counts  []int64
	total   int64
	// strict or legacy, decides GreaterThan at v == max
	policy string
}

// NewIntHistogram creates a histogram of buckets equal-width bins over [min, max]
// with the strict boundary policy
func NewIntHistogram(buckets int, min int32, max int32) *IntHistogram {
	return NewIntHistogramWithPolicy(buckets, min, max, common.BoundaryPolicyStrict)
}

func NewIntHistogramWithPolicy(buckets int, min int32, max int32, policy string) *IntHistogram {
	common.SH_Assert(buckets > 0, "histogram needs at least one bucket")
	common.SH_Assert(min <= max, "histogram min is larger than max")
	return &IntHistogram{
		buckets: buckets,
		min:     min,
		max:     max,
		width:   (float64(max) - float64(min)) / float64(buckets),
		counts:  make([]int64, buckets),
		policy:  policy,
	}
}

// GetBinIndex returns the bucket of v, or a negative sentinel when v is out of [min, max]
func (h *IntHistogram) GetBinIndex(v int32) int {
	switch {
	case v == h.max:
		return h.buckets - 1
	case h.min <= v && v < h.max:
		idx := int(math.Floor((float64(v) - float64(h.min)) / h.width))
		if idx >= h.buckets {
			idx = h.buckets - 1
		}
		return idx
	case v < h.min:
		return belowRange
	}
	return aboveRange
}

// AddValue counts v. Values outside [min, max] are ignored.
func (h *IntHistogram) AddValue(v int32) {
	idx := h.GetBinIndex(v)
	if idx < 0 {
		common.ShPrintf(common.DEBUG_INFO, "IntHistogram::AddValue: %d is out of [%d, %d]\n", v, h.min, h.max)
		return
	}
	h.counts[idx]++
	h.total++
}

func (h *IntHistogram) Total() int64 {
	return h.total
}

// EstimateSelectivity returns the estimated fraction of values satisfying "value op v"
func (h *IntHistogram) EstimateSelectivity(op expression.ComparisonType, v int32) float64 {
	idx := h.GetBinIndex(v)

	switch op {
	case expression.Equal:
		return h.equalsFraction(idx)
	case expression.NotEqual:
		return 1.0 - h.equalsFraction(idx)
	case expression.Like:
		return 1.0
	}

	greater := op == expression.GreaterThan || op == expression.GreaterThanOrEqual

	// boundary outputs
	if v == h.min && op == expression.LessThan {
		return 0.0
	}
	if v == h.max && op == expression.GreaterThan {
		if h.policy == common.BoundaryPolicyLegacy {
			return 1.0
		}
		return 0.0
	}
	if idx == belowRange {
		if greater {
			return 1.0
		}
		return 0.0
	}
	if idx == aboveRange {
		if greater {
			return 0.0
		}
		return 1.0
	}
	if h.total == 0 {
		return 0.0
	}

	// in-range bucket assumes values are spread uniformly inside it
	fraction := 1.0
	if h.width > 0 {
		leftEdge := float64(h.min) + float64(idx)*h.width
		rightEdge := leftEdge + h.width
		if greater {
			fraction = (rightEdge - float64(v)) / h.width
		} else {
			fraction = (float64(v) - leftEdge) / h.width
		}
		fraction = math.Max(0.0, math.Min(1.0, fraction))
	}
	selectivity := float64(h.counts[idx]) / float64(h.total) * fraction

	if greater {
		for i := idx + 1; i < h.buckets; i++ {
			selectivity += float64(h.counts[i]) / float64(h.total)
		}
	} else {
		for i := idx - 1; i >= 0; i-- {
			selectivity += float64(h.counts[i]) / float64(h.total)
		}
	}
	return selectivity
}

func (h *IntHistogram) equalsFraction(idx int) float64 {
	if idx < 0 || h.total == 0 {
		return 0.0
	}
	return float64(h.counts[idx]) / float64(h.total)
}

func (h *IntHistogram) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ntups: %d\n", h.total)
	for i := 0; i < h.buckets; i++ {
		left := float64(h.min) + float64(i)*h.width
		fmt.Fprintf(&sb, "%g~%g -> %d\n", left, left+h.width, h.counts[i])
	}
	return sb.String()
}
