// Package format renders values for terminal display.
package format

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// HumanizeBytes renders a byte count with a binary-scaled unit, one decimal
// place above bytes (e.g. "1.5 MB").
func HumanizeBytes(n int64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}
