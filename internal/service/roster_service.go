package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/backend"
	"github.com/noah-isme/sms-portal/internal/grades"
	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/internal/view"
	"github.com/noah-isme/sms-portal/pkg/export"
)

// statsFetchLimit is the "effectively all records" page size used for
// roster-wide statistics and exports.
const statsFetchLimit = 1000

type rosterBackend interface {
	ListStudents(ctx context.Context, token string, q backend.ListQuery) (*models.StudentPage, error)
}

// RosterService serves the listing pages: paginated fetches for the view
// controller, roster-wide statistics, and downloads.
type RosterService struct {
	backend rosterBackend
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(b rosterBackend, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		backend: b,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

type boundFetcher struct {
	svc   *RosterService
	token string
}

func (f boundFetcher) FetchPage(ctx context.Context, q view.Query) (*models.StudentPage, error) {
	return f.svc.backend.ListStudents(ctx, f.token, backend.ListQuery{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
	})
}

// Fetcher binds a session token to the roster listing, yielding the fetcher
// a view controller consumes.
func (s *RosterService) Fetcher(token string) view.Fetcher {
	return boundFetcher{svc: s, token: token}
}

// Stats fetches a large page covering the whole roster and aggregates it in
// one pass. It is independent of any paginated listing query.
func (s *RosterService) Stats(ctx context.Context, token string) (models.RosterStats, error) {
	page, err := s.backend.ListStudents(ctx, token, backend.ListQuery{Limit: statsFetchLimit})
	if err != nil {
		return models.RosterStats{}, err
	}
	stats := view.AggregateStats(page.Students)
	if page.Total > 0 {
		stats.Total = page.Total
	}
	return stats, nil
}

// ExportCSV renders the whole roster as CSV.
func (s *RosterService) ExportCSV(ctx context.Context, token string) ([]byte, error) {
	data, err := s.rosterDataset(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.csv.Render(data)
}

// ExportPDF renders the whole roster as a tabular PDF.
func (s *RosterService) ExportPDF(ctx context.Context, token string) ([]byte, error) {
	data, err := s.rosterDataset(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(data, "Student Roster")
}

var rosterHeaders = []string{"Reg No", "Name", "Email", "Gender", "Department", "Subjects", "Average"}

func (s *RosterService) rosterDataset(ctx context.Context, token string) (export.Dataset, error) {
	page, err := s.backend.ListStudents(ctx, token, backend.ListQuery{Limit: statsFetchLimit})
	if err != nil {
		return export.Dataset{}, err
	}

	rows := make([]map[string]string, 0, len(page.Students))
	for _, st := range page.Students {
		rows = append(rows, map[string]string{
			"Reg No":     st.RegNo,
			"Name":       st.Name,
			"Email":      st.Email,
			"Gender":     st.Gender,
			"Department": st.Department,
			"Subjects":   strconv.Itoa(len(st.Subjects)),
			"Average":    grades.FormatAverage(st.Subjects),
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}, nil
}
