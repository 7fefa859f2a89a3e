// Package backend is the HTTP client for the remote student-management API.
// Every data operation in the portal goes through it; it owns the outbound
// Authorization header and the {message} error decode.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/pkg/config"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

// Client talks to the student-management backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a backend client.
func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// AuthResponse is the payload returned by all three auth endpoints.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AdminLoginRequest carries admin credentials.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StudentLoginRequest carries student credentials.
type StudentLoginRequest struct {
	RegNo    string `json:"regNo"`
	Password string `json:"password"`
}

// RegisterStudentRequest carries the self-registration payload.
type RegisterStudentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	RegNo      string `json:"regNo"`
	Password   string `json:"password"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// StudentPayload carries student fields for create and update calls. Password
// and Subjects are only sent when set.
type StudentPayload struct {
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	RegNo      string            `json:"regNo,omitempty"`
	Gender     string            `json:"gender,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Department string            `json:"department,omitempty"`
	Password   string            `json:"password,omitempty"`
	Subjects   *[]models.Subject `json:"subjects,omitempty"`
}

// ListQuery is the paginated roster query.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type listResponse struct {
	Data       []models.Student `json:"data"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

type studentResponse struct {
	Data models.Student `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// AdminLogin exchanges admin credentials for a token and identity.
func (c *Client) AdminLogin(ctx context.Context, req AdminLoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/admin-login", "", req, &out, "Invalid email or password"); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentLogin exchanges student credentials for a token and identity.
func (c *Client) StudentLogin(ctx context.Context, req StudentLoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/student-login", "", req, &out, "Invalid registration number or password"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterStudent creates a student account and returns its first session.
func (c *Client) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register-student", "", req, &out, "Registration failed. Please try again."); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStudents fetches one roster page.
func (c *Client) ListStudents(ctx context.Context, token string, q ListQuery) (*models.StudentPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	params.Set("search", q.Search)

	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/students?"+params.Encode(), token, nil, &out, "Failed to fetch students"); err != nil {
		return nil, err
	}
	page := &models.StudentPage{
		Students:   out.Data,
		Total:      out.Total,
		TotalPages: out.TotalPages,
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// GetStudent fetches a single record.
func (c *Client) GetStudent(ctx context.Context, token, id string) (*models.Student, error) {
	var out studentResponse
	if err := c.do(ctx, http.MethodGet, "/students/"+url.PathEscape(id), token, nil, &out, "Failed to fetch student"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateStudent creates a record on behalf of an admin.
func (c *Client) CreateStudent(ctx context.Context, token string, payload StudentPayload) (*models.Student, error) {
	var out studentResponse
	if err := c.do(ctx, http.MethodPost, "/students", token, payload, &out, "Failed to create student"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateStudent updates record fields.
func (c *Client) UpdateStudent(ctx context.Context, token, id string, payload StudentPayload) (*models.Student, error) {
	var out studentResponse
	if err := c.do(ctx, http.MethodPut, "/students/"+url.PathEscape(id), token, payload, &out, "Failed to update student"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateSubjects replaces the subject list of a record.
func (c *Client) UpdateSubjects(ctx context.Context, token, id string, subjects []models.Subject) (*models.Student, error) {
	body := map[string][]models.Subject{"subjects": subjects}
	var out studentResponse
	if err := c.do(ctx, http.MethodPut, "/students/"+url.PathEscape(id)+"/subjects", token, body, &out, "Failed to update subjects"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteStudent removes a record.
func (c *Client) DeleteStudent(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/students/"+url.PathEscape(id), token, nil, nil, "Failed to delete student")
}

// Ping probes the backend root and reports the round-trip latency. The base
// URL's /api suffix is stripped so the probe hits the service root.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	root := strings.TrimSuffix(c.baseURL, "/api")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root, nil)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		return latency, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return latency, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, fallback string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallback)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallback)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, fallback)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fallback)
	}
	return nil
}

// decodeError maps a non-2xx backend response to a typed error, preferring the
// server-provided message over the per-action fallback.
func (c *Client) decodeError(resp *http.Response, fallback string) error {
	message := fallback
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return appErrors.New(appErrors.ErrValidation.Code, resp.StatusCode, message)
	default:
		return appErrors.New(appErrors.ErrUpstream.Code, http.StatusBadGateway, message)
	}
}
