package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

// Store is an in-memory implementation of storage.Store
type Store struct {
	mu            sync.RWMutex
	registrations []*storage.Registration
	inquiries     []*storage.Inquiry
}

var _ storage.Store = (*Store)(nil)

// New creates a new in-memory store
func New() *Store {
	return &Store{}
}

func (s *Store) CreateRegistration(ctx context.Context, r *storage.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.registrations {
		if strings.EqualFold(existing.Email, r.Email) {
			return fmt.Errorf("registration for %s: %w", r.Email, storage.ErrDuplicate)
		}
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	stored := *r
	s.registrations = append(s.registrations, &stored)
	return nil
}

func (s *Store) GetRegistration(ctx context.Context, id string) (*storage.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.registrations {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, fmt.Errorf("registration %s: %w", id, storage.ErrNotFound)
}

func (s *Store) ListRegistrations(ctx context.Context, opts storage.ListOptions) ([]*storage.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*storage.Registration
	for _, r := range slices.Backward(s.registrations) {
		if opts.Status != "" && r.Status != opts.Status {
			continue
		}
		out := *r
		result = append(result, &out)
		if opts.Limit > 0 && len(result) == opts.Limit {
			break
		}
	}
	return result, nil
}

func (s *Store) CreateInquiry(ctx context.Context, q *storage.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	stored := *q
	s.inquiries = append(s.inquiries, &stored)
	return nil
}

func (s *Store) ListInquiries(ctx context.Context, opts storage.ListOptions) ([]*storage.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*storage.Inquiry
	for _, q := range slices.Backward(s.inquiries) {
		if opts.Status != "" && q.Status != opts.Status {
			continue
		}
		out := *q
		result = append(result, &out)
		if opts.Limit > 0 && len(result) == opts.Limit {
			break
		}
	}
	return result, nil
}

func (s *Store) Close() error {
	return nil
}
