// Package supabase stores form submissions in a hosted Supabase project
// through its PostgREST endpoint.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

const (
	registrationsTable = "team_registrations"
	inquiriesTable     = "donation_inquiries"

	// uniqueViolation is the Postgres SQLSTATE for a unique key collision.
	uniqueViolation = "23505"
)

// Config points the store at a project.
type Config struct {
	URL string
	// Key is sent as both the apikey header and the bearer token. The
	// service role key bypasses row level security; the anon key works
	// when the tables allow inserts.
	Key        string
	HTTPClient *http.Client
}

// Store is a PostgREST implementation of storage.Store
type Store struct {
	base   *url.URL
	key    string
	client *http.Client
}

var _ storage.Store = (*Store)(nil)

// New creates a store for the project at cfg.URL.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, errors.New("supabase: url and key are required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/") + "/rest/v1/")
	if err != nil {
		return nil, fmt.Errorf("supabase: invalid url: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &Store{base: base, key: cfg.Key, client: client}, nil
}

// APIError is an error body returned by PostgREST.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: %d: %s", e.StatusCode, e.Message)
}

func (s *Store) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	u := s.base.JoinPath(table)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s row: %w", table, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	return nil
}

func isDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Code == uniqueViolation || apiErr.StatusCode == http.StatusConflict)
}

func listQuery(opts storage.ListOptions) url.Values {
	q := url.Values{}
	q.Set("order", "created_at.desc")
	if opts.Status != "" {
		q.Set("status", "eq."+opts.Status)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	return q
}

func (s *Store) CreateRegistration(ctx context.Context, r *storage.Registration) error {
	var rows []storage.Registration
	if err := s.do(ctx, http.MethodPost, registrationsTable, nil, r, &rows); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("registration for %s: %w", r.Email, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	if len(rows) > 0 {
		r.ID = rows[0].ID
		r.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

func (s *Store) GetRegistration(ctx context.Context, id string) (*storage.Registration, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var rows []*storage.Registration
	if err := s.do(ctx, http.MethodGet, registrationsTable, q, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registration %s: %w", id, storage.ErrNotFound)
	}
	return rows[0], nil
}

func (s *Store) ListRegistrations(ctx context.Context, opts storage.ListOptions) ([]*storage.Registration, error) {
	var rows []*storage.Registration
	if err := s.do(ctx, http.MethodGet, registrationsTable, listQuery(opts), nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return rows, nil
}

func (s *Store) CreateInquiry(ctx context.Context, q *storage.Inquiry) error {
	var rows []storage.Inquiry
	if err := s.do(ctx, http.MethodPost, inquiriesTable, nil, q, &rows); err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	if len(rows) > 0 {
		q.ID = rows[0].ID
		q.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

func (s *Store) ListInquiries(ctx context.Context, opts storage.ListOptions) ([]*storage.Inquiry, error) {
	var rows []*storage.Inquiry
	if err := s.do(ctx, http.MethodGet, inquiriesTable, listQuery(opts), nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return rows, nil
}

// Close releases idle connections.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
