// Package grades holds the pure grading arithmetic shared by every view:
// per-mark letter grades, pass/fail, and subject averages.
package grades

import (
	"fmt"
	"math"

	"github.com/noah-isme/sms-portal/internal/models"
)

// PassMark is the lowest passing mark.
const PassMark = 40

// Grade maps a mark in [0,100] to its letter grade. Boundaries are inclusive
// on the lower bound: 90 is S, 89 is A+.
func Grade(mark int) string {
	switch {
	case mark >= 90:
		return "S"
	case mark >= 85:
		return "A+"
	case mark >= 80:
		return "A"
	case mark >= 70:
		return "B+"
	case mark >= 60:
		return "B"
	case mark >= 50:
		return "C"
	case mark >= 40:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether a mark clears the pass threshold.
func Passed(mark int) bool {
	return mark >= PassMark
}

// PassFail renders a mark as "Pass" or "Fail".
func PassFail(mark int) string {
	if Passed(mark) {
		return "Pass"
	}
	return "Fail"
}

// Average returns the arithmetic mean of the subject marks rounded to two
// decimal places. The second return is false when there are no subjects;
// average-of-empty is undefined and callers must handle it.
func Average(subjects []models.Subject) (float64, bool) {
	if len(subjects) == 0 {
		return 0, false
	}
	total := 0
	for _, s := range subjects {
		total += s.Mark
	}
	avg := float64(total) / float64(len(subjects))
	return math.Round(avg*100) / 100, true
}

// FormatAverage renders the average with two decimals, or "N/A" when the
// student has no subjects.
func FormatAverage(subjects []models.Subject) string {
	avg, ok := Average(subjects)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", avg)
}

// OverallResult is "Pass" when the student has at least one subject and none
// below the pass mark, otherwise "Fail".
func OverallResult(subjects []models.Subject) string {
	if len(subjects) == 0 {
		return "Fail"
	}
	for _, s := range subjects {
		if !Passed(s.Mark) {
			return "Fail"
		}
	}
	return "Pass"
}

// PassCount returns how many subjects clear the pass mark.
func PassCount(subjects []models.Subject) int {
	n := 0
	for _, s := range subjects {
		if Passed(s.Mark) {
			n++
		}
	}
	return n
}

// FailCount returns how many subjects fall below the pass mark.
func FailCount(subjects []models.Subject) int {
	return len(subjects) - PassCount(subjects)
}
