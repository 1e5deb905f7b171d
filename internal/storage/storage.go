// Package storage defines the records written by the site's forms and the
// stores that persist them.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned when a record collides with a unique key,
	// such as a second registration for the same email.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("record not found")
)

// Registration statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Inquiry statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

// Registration is a team signing up for the hackathon. Email is unique.
type Registration struct {
	ID          string    `json:"id,omitempty"`
	TeamName    string    `json:"team_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	TeamMembers string    `json:"team_members"`
	ProjectIdea string    `json:"project_idea,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Inquiry is a sponsor or donor getting in touch.
type Inquiry struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	InquiryType string    `json:"inquiry_type"`
	Amount      string    `json:"amount,omitempty"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// ListOptions filters list queries. A zero Limit means no limit.
type ListOptions struct {
	Status string
	Limit  int
}

// RegistrationStore persists team registrations.
type RegistrationStore interface {
	// CreateRegistration stores r, filling in ID and CreatedAt when they
	// are empty. It returns ErrDuplicate when the email is taken.
	CreateRegistration(ctx context.Context, r *Registration) error
	GetRegistration(ctx context.Context, id string) (*Registration, error)
	ListRegistrations(ctx context.Context, opts ListOptions) ([]*Registration, error)
}

// InquiryStore persists donation and sponsorship inquiries.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, q *Inquiry) error
	ListInquiries(ctx context.Context, opts ListOptions) ([]*Inquiry, error)
}

// Store is everything the site writes.
type Store interface {
	RegistrationStore
	InquiryStore
	Close() error
}
