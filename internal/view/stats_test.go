package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sms-portal/internal/models"
)

func TestAggregateStats(t *testing.T) {
	students := []models.Student{
		{Gender: "Male", Department: "CSE"},
		{Gender: "Female", Department: "CSE"},
		{Gender: "Male", Department: "ECE"},
		{Gender: "Other", Department: "ECE"},
		{Gender: "male", Department: "MECH"}, // not an exact match, ignored
	}

	stats := AggregateStats(students)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Male)
	assert.Equal(t, 1, stats.Female)
	assert.Equal(t, map[string]int{"CSE": 2, "ECE": 2, "MECH": 1}, stats.Departments)
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats := AggregateStats(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.Departments)
}
