package models

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// ElapsedDays returns floor((now - from) / 24h). A zero or future from is not
// treated specially.
func ElapsedDays(from, now time.Time) int {
	return int(math.Floor(float64(now.Sub(from)) / float64(day)))
}
