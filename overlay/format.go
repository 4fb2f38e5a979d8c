package overlay

import (
	"fmt"
	"math"
	"strconv"
)

// FPSUnavailable is shown instead of a frame rate when no time has elapsed.
const FPSUnavailable = "n/a"

// FormatTime renders nanoseconds as milliseconds with microsecond precision,
// rounding to the nearest microsecond: 1_500_499 -> "1.500", 999_500 -> "1.000".
// Negative values keep their sign and are rounded on the magnitude.
func FormatTime(ns int64) string {
	mag := uint64(ns)
	if ns < 0 {
		mag = uint64(-(ns + 1)) + 1
	}
	us := (mag + 500) / 1000

	sign := ""
	if ns < 0 && us > 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%03d", sign, us/1000, us%1000)
}

// MaxFPS estimates the frame rate achievable if a frame took grandTotal
// nanoseconds. ok is false when grandTotal is not positive.
func MaxFPS(grandTotal int64) (fps int64, ok bool) {
	if grandTotal <= 0 {
		return 0, false
	}
	return int64(math.Round(1e9 / float64(grandTotal))), true
}

// FormatFPS renders MaxFPS, or FPSUnavailable when it is undefined.
func FormatFPS(grandTotal int64) string {
	fps, ok := MaxFPS(grandTotal)
	if !ok {
		return FPSUnavailable
	}
	return strconv.FormatInt(fps, 10)
}
