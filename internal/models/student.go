package models

// Subject is a single subject entry on a student record. Subjects are
// identified by position in the list; there is no stable subject ID.
type Subject struct {
	SubjectName string `json:"subjectName"`
	Mark        int    `json:"mark"`
}

// Student is the remote-owned student record. It is fetched per view and
// never cached beyond the handling of a single request.
type Student struct {
	ID         string    `json:"_id"`
	RegNo      string    `json:"regNo"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Gender     string    `json:"gender"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Subjects   []Subject `json:"subjects"`
}

// StudentPage is one page of the roster as returned by the backend.
type StudentPage struct {
	Students   []Student
	Total      int
	TotalPages int
}

// RosterStats aggregates the whole roster for the dashboard cards.
type RosterStats struct {
	Total       int
	Male        int
	Female      int
	Departments map[string]int
}
