package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/models"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

// SearchDebounce is the quiet period before a typed search term is committed.
const SearchDebounce = 500 * time.Millisecond

// DefaultPageSize is used when no or an invalid page size is selected.
const DefaultPageSize = 10

// PageSizes are the selectable page sizes, mirroring the page-size control.
var PageSizes = []int{5, 10, 20, 50}

// Fetcher retrieves one roster page for a committed query.
type Fetcher interface {
	FetchPage(ctx context.Context, q Query) (*models.StudentPage, error)
}

// Query is the committed listing query: exactly these three values travel in
// each outbound request.
type Query struct {
	Page   int
	Limit  int
	Search string
}

// Snapshot is an immutable view of the controller state handed to
// subscribers and renderers.
type Snapshot struct {
	Students   []models.Student
	Query      Query
	TotalPages int
	TotalCount int
	Window     []int
	Loading    bool
	FirstLoad  bool
	Err        string
}

// ShowingFrom is the ordinal of the first visible row ("Showing X to ...").
func (s Snapshot) ShowingFrom() int {
	if len(s.Students) == 0 {
		return 0
	}
	return (s.Query.Page-1)*s.Query.Limit + 1
}

// ShowingTo is the ordinal of the last visible row.
func (s Snapshot) ShowingTo() int {
	to := s.Query.Page * s.Query.Limit
	if to > s.TotalCount {
		to = s.TotalCount
	}
	return to
}

// Config tunes a controller. Zero values fall back to the defaults.
type Config struct {
	PageSize int
	Debounce time.Duration
}

// Controller turns raw listing interactions into at most one well-formed
// fetch per meaningful change. All state is guarded by one mutex; responses
// are applied atomically and tagged with a sequence number so a stale
// response can never overwrite a newer one.
type Controller struct {
	fetcher  Fetcher
	logger   *zap.Logger
	debounce *Debouncer

	mu         sync.Mutex
	query      Query
	totalPages int
	totalCount int
	rows       []models.Student
	loading    bool
	firstLoad  bool
	errMsg     string
	seq        uint64
	applied    uint64
	subs       []func(Snapshot)
}

// NewController constructs a controller around a fetcher.
func NewController(fetcher Fetcher, cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.PageSize
	if !validPageSize(size) {
		size = DefaultPageSize
	}
	delay := cfg.Debounce
	if delay <= 0 {
		delay = SearchDebounce
	}

	c := &Controller{
		fetcher:    fetcher,
		logger:     logger,
		query:      Query{Page: 1, Limit: size},
		totalPages: 1,
		firstLoad:  true,
	}
	c.debounce = NewDebouncer(delay, c.commitSearch)
	return c
}

// Subscribe registers fn to receive a snapshot after every state change.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// SetSearch feeds a keystroke into the debouncer. The term is committed, the
// page reset to 1 and one fetch issued only after the quiet period.
func (c *Controller) SetSearch(text string) {
	c.debounce.Input(text)
}

// SetLimit commits a page size immediately and resets to page 1. Sizes
// outside the allowed set coerce to the default. Re-selecting the current
// size is a no-op.
func (c *Controller) SetLimit(size int) {
	if !validPageSize(size) {
		size = DefaultPageSize
	}

	c.mu.Lock()
	if size == c.query.Limit {
		c.mu.Unlock()
		return
	}
	c.query.Limit = size
	c.query.Page = 1
	c.mu.Unlock()

	c.Refresh(context.Background())
}

// SetPage commits a page change immediately. Out-of-range pages and the
// current page are no-ops.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	if page < 1 || page > c.totalPages || page == c.query.Page {
		c.mu.Unlock()
		return
	}
	c.query.Page = page
	c.mu.Unlock()

	c.Refresh(context.Background())
}

// Load seeds the committed query and issues one fetch. Invalid page sizes
// coerce to the default and pages below 1 to 1; pages beyond the fetched
// total stay as requested so the response decides what exists. Server
// handlers use this for one request/one snapshot rendering.
func (c *Controller) Load(ctx context.Context, q Query) {
	if !validPageSize(q.Limit) {
		q.Limit = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}

	c.mu.Lock()
	c.query = q
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Refresh issues one fetch for the committed query and applies the response
// atomically. It returns after the response has been applied or discarded.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	q := c.query
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()
	c.publish()

	page, err := c.fetcher.FetchPage(ctx, q)
	c.apply(seq, page, err)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Stop cancels a pending debounced search.
func (c *Controller) Stop() {
	c.debounce.Stop()
}

func (c *Controller) commitSearch(text string) {
	c.mu.Lock()
	if text == c.query.Search {
		c.mu.Unlock()
		return
	}
	c.query.Search = text
	c.query.Page = 1
	c.mu.Unlock()

	c.Refresh(context.Background())
}

// apply installs a fetch result. Responses are ordered by sequence number:
// anything at or below the newest applied sequence is stale and dropped.
func (c *Controller) apply(seq uint64, page *models.StudentPage, err error) {
	c.mu.Lock()
	if seq <= c.applied {
		c.mu.Unlock()
		c.logger.Debug("discarded stale fetch response", zap.Uint64("seq", seq))
		return
	}
	c.applied = seq
	c.firstLoad = false
	if seq == c.seq {
		c.loading = false
	}

	if err != nil {
		c.errMsg = appErrors.FromError(err).Message
		c.mu.Unlock()
		c.publish()
		return
	}

	c.rows = page.Students
	c.totalCount = page.Total
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.errMsg = ""
	c.mu.Unlock()
	c.publish()
}

func (c *Controller) publish() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	rows := make([]models.Student, len(c.rows))
	copy(rows, c.rows)
	return Snapshot{
		Students:   rows,
		Query:      c.query,
		TotalPages: c.totalPages,
		TotalCount: c.totalCount,
		Window:     PageWindow(c.query.Page, c.totalPages),
		Loading:    c.loading,
		FirstLoad:  c.firstLoad,
		Err:        c.errMsg,
	}
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
