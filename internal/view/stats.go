package view

import "github.com/noah-isme/sms-portal/internal/models"

// AggregateStats makes one pass over a roster slice, counting exact
// "Male"/"Female" genders (anything else is ignored) and occurrences per
// department string. Total is the slice length; callers that know the true
// roster total override it.
func AggregateStats(students []models.Student) models.RosterStats {
	stats := models.RosterStats{
		Total:       len(students),
		Departments: make(map[string]int),
	}
	for _, s := range students {
		switch s.Gender {
		case "Male":
			stats.Male++
		case "Female":
			stats.Female++
		}
		stats.Departments[s.Department]++
	}
	return stats
}
