package familytree

import "math"

// Child-bearing window, in years after the elder parent's birth.
const (
	childWindowStart = 25
	childWindowEnd   = 45
)

// birthRateSpread is the half-width of the child count range around the
// decade's birth rate.
const birthRateSpread = 1.5

// ChildCountRange returns the inclusive bounds for a family's child count.
// Both ends round up, so the range is not perfectly centred on birthRate.
func ChildCountRange(birthRate float64) (lo, hi int) {
	return int(math.Ceil(birthRate - birthRateSpread)), int(math.Ceil(birthRate + birthRateSpread))
}

// ChildBirthYears spaces k birth years across the elder parent's 25th to
// 45th years inclusive. A single child lands on the midpoint; halves round to
// even.
func ChildBirthYears(parentYear, k int) []int {
	if k <= 0 {
		return []int{}
	}
	start := parentYear + childWindowStart
	end := parentYear + childWindowEnd
	if k == 1 {
		return []int{(start + end) / 2}
	}
	step := float64(end-start) / float64(k-1)
	years := make([]int, k)
	for i := range years {
		years[i] = int(math.RoundToEven(float64(start) + float64(i)*step))
	}
	return years
}
