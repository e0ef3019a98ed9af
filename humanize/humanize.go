// Package humanize renders byte counts and durations for the benchmark report.
package humanize

import "fmt"

var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

// FormatSize renders bytes with 1024-based units up to GB, two decimals.
func FormatSize(bytes uint64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}

// FormatTime renders a tick count taken from the report's microsecond
// clock. Counts below 1000 are printed as whole nanoseconds (count*1000).
// Larger counts step through µs, ms and s, dividing by 1000, 10^6 and 10^9.
func FormatTime(us uint64) string {
	switch {
	case us < 1000:
		return fmt.Sprintf("%d ns", us*1000)
	case us < 1000000:
		return fmt.Sprintf("%.2f µs", float64(us)/1e3)
	case us < 1000000000:
		return fmt.Sprintf("%.2f ms", float64(us)/1e6)
	default:
		return fmt.Sprintf("%.2f s", float64(us)/1e9)
	}
}
