package helper

import (
	"strconv"
	"time"
)

// method to print points without a trailing ".0" for whole numbers
func FormatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// clamp v into [min, max]
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
