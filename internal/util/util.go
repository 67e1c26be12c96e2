package util

import (
	"math"
	"time"
)

// Round rounds to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Seconds converts d to seconds rounded to 2 decimals.
func Seconds(d time.Duration) float64 {
	return Round(d.Seconds())
}

// Percent returns part as a percentage of total, rounded to 2 decimals.
// A zero total yields 0.
func Percent[T ~int | ~uint64 | ~int64](part, total T) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part) / float64(total) * 100)
}
