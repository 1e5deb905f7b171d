package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

func TestSQLiteStore_CreateRegistration(t *testing.T) {
	// Use in-memory SQLite with shared cache for testing
	store, err := New("file:memdb1?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	reg := &storage.Registration{
		TeamName:    "Atlas",
		Email:       "team@atlas.dev",
		TeamMembers: "Ana, Ben",
		Phone:       "801-555-0100",
		Status:      storage.StatusPending,
	}

	if err := store.CreateRegistration(context.Background(), reg); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	retrieved, err := store.GetRegistration(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("GetRegistration() error = %v", err)
	}

	if retrieved.TeamName != reg.TeamName {
		t.Errorf("TeamName = %v, want %v", retrieved.TeamName, reg.TeamName)
	}
	if retrieved.Phone != reg.Phone {
		t.Errorf("Phone = %v, want %v", retrieved.Phone, reg.Phone)
	}
	if retrieved.ProjectIdea != "" {
		t.Errorf("ProjectIdea = %q, want empty", retrieved.ProjectIdea)
	}
	if retrieved.Status != storage.StatusPending {
		t.Errorf("Status = %v, want %v", retrieved.Status, storage.StatusPending)
	}
}

func TestSQLiteStore_DuplicateEmail(t *testing.T) {
	store, err := New("file:memdb2?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := &storage.Registration{TeamName: "A", Email: "dup@example.com", TeamMembers: "x", Status: storage.StatusPending}
	if err := store.CreateRegistration(ctx, first); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	second := &storage.Registration{TeamName: "B", Email: "Dup@Example.com", TeamMembers: "y", Status: storage.StatusPending}
	err = store.CreateRegistration(ctx, second)
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("CreateRegistration() error = %v, want ErrDuplicate", err)
	}
}

func TestSQLiteStore_GetRegistrationNotFound(t *testing.T) {
	store, err := New("file:memdb3?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	_, err = store.GetRegistration(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetRegistration() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_ListRegistrations(t *testing.T) {
	store, err := New("file:memdb4?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, r := range []*storage.Registration{
		{TeamName: "A", Email: "a@x.io", TeamMembers: "1", Status: storage.StatusPending},
		{TeamName: "B", Email: "b@x.io", TeamMembers: "2", Status: storage.StatusApproved},
		{TeamName: "C", Email: "c@x.io", TeamMembers: "3", Status: storage.StatusPending},
	} {
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.CreateRegistration(ctx, r); err != nil {
			t.Fatalf("CreateRegistration() error = %v", err)
		}
	}

	pending, err := store.ListRegistrations(ctx, storage.ListOptions{Status: storage.StatusPending})
	if err != nil {
		t.Fatalf("ListRegistrations() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListRegistrations() count = %d, want 2", len(pending))
	}
	if pending[0].TeamName != "C" || pending[1].TeamName != "A" {
		t.Errorf("order = %v, %v, want C, A", pending[0].TeamName, pending[1].TeamName)
	}

	limited, _ := store.ListRegistrations(ctx, storage.ListOptions{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limited count = %d, want 1", len(limited))
	}
}

func TestSQLiteStore_Inquiries(t *testing.T) {
	store, err := New("file:memdb5?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	q := &storage.Inquiry{
		Name:        "Dana",
		Email:       "d@corp.com",
		Company:     "Corp",
		InquiryType: "sponsorship",
		Amount:      "5000",
		Status:      storage.StatusNew,
	}
	if err := store.CreateInquiry(ctx, q); err != nil {
		t.Fatalf("CreateInquiry() error = %v", err)
	}
	// inquiries are not unique per email
	if err := store.CreateInquiry(ctx, &storage.Inquiry{Name: "Dana", Email: "d@corp.com", InquiryType: "donation", Status: storage.StatusNew}); err != nil {
		t.Fatalf("CreateInquiry() second error = %v", err)
	}

	got, err := store.ListInquiries(ctx, storage.ListOptions{})
	if err != nil {
		t.Fatalf("ListInquiries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListInquiries() count = %d, want 2", len(got))
	}

	var found *storage.Inquiry
	for _, g := range got {
		if g.ID == q.ID {
			found = g
		}
	}
	if found == nil {
		t.Fatalf("inquiry %s not listed", q.ID)
	}
	if found.Company != "Corp" || found.Amount != "5000" || found.Message != "" {
		t.Errorf("inquiry = %+v", found)
	}
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")

	store, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	reg := &storage.Registration{TeamName: "A", Email: "a@x.io", TeamMembers: "1", Status: storage.StatusPending}
	if err := store.CreateRegistration(context.Background(), reg); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}
	store.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetRegistration(context.Background(), reg.ID); err != nil {
		t.Errorf("GetRegistration() after reopen error = %v", err)
	}
}
