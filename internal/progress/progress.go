// Package progress computes reading-progress figures from book records.
// All functions are pure; presentation happens elsewhere.
package progress

import "github.com/lepinkainen/booktracer/internal/store"

// PercentComplete returns how far through a book the reader is, in the
// range [0, 100]. Books with unknown length report 0.
func PercentComplete(b store.Book) float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return 100 * float64(b.CurrentPage) / float64(b.TotalPages)
}

// DaysToFinish estimates the days left to finish a book at the given
// pages-per-day rate, rounding up. The second return is false when no
// estimate is possible: rate unset or book already at (or past) the end.
func DaysToFinish(b store.Book, dailyRate int) (int, bool) {
	if dailyRate <= 0 || b.TotalPages <= b.CurrentPage {
		return 0, false
	}
	remaining := b.TotalPages - b.CurrentPage
	return (remaining + dailyRate - 1) / dailyRate, true
}
