// Package dashboard contains the pure statistics computed for the dashboard.
package dashboard

import "math"

// SuccessRate returns the percentage of passed executions rounded to one
// decimal place, or 0 when nothing has run.
func SuccessRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(passed)/float64(total)) / 10
}
