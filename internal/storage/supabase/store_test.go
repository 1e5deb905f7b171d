package supabase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
	"github.com/vibecodeutah/hackathon-site/internal/testutil"
)

const projectURL = "https://vibecodeutah.supabase.co"

func newTestStore(t *testing.T, cassette string) *Store {
	t.Helper()

	r := testutil.NewRecorder(t, cassette)
	store, err := New(Config{
		URL:        testutil.Env("SUPABASE_URL", projectURL),
		Key:        testutil.Env("SUPABASE_SERVICE_ROLE_KEY", "test-key"),
		HTTPClient: testutil.HTTPClient(r),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(Config{URL: projectURL}); err == nil {
		t.Error("New() without key should fail")
	}
	if _, err := New(Config{Key: "k"}); err == nil {
		t.Error("New() without url should fail")
	}
}

func TestStore_CreateRegistration(t *testing.T) {
	store := newTestStore(t, "supabase_create_registration")

	reg := &storage.Registration{
		TeamName:    "Atlas",
		Email:       "team@atlas.dev",
		TeamMembers: "Ana, Ben",
		Status:      storage.StatusPending,
	}
	if err := store.CreateRegistration(context.Background(), reg); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	if reg.ID != "7f1c2a9e-4b1d-4c55-9a8e-1f0e2d3c4b5a" {
		t.Errorf("ID = %v, want the id assigned by the server", reg.ID)
	}
	if reg.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled from the response")
	}
}

func TestStore_CreateRegistrationDuplicate(t *testing.T) {
	store := newTestStore(t, "supabase_duplicate_registration")

	reg := &storage.Registration{
		TeamName:    "Atlas Again",
		Email:       "team@atlas.dev",
		TeamMembers: "Cy",
		Status:      storage.StatusPending,
	}
	err := store.CreateRegistration(context.Background(), reg)
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("CreateRegistration() error = %v, want ErrDuplicate", err)
	}
}

func TestStore_GetRegistrationNotFound(t *testing.T) {
	store := newTestStore(t, "supabase_get_missing")

	_, err := store.GetRegistration(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetRegistration() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListRegistrations(t *testing.T) {
	store := newTestStore(t, "supabase_list_registrations")

	regs, err := store.ListRegistrations(context.Background(), storage.ListOptions{Status: storage.StatusPending, Limit: 2})
	if err != nil {
		t.Fatalf("ListRegistrations() error = %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("ListRegistrations() count = %d, want 2", len(regs))
	}
	if regs[0].TeamName != "Beacon" || regs[1].TeamName != "Atlas" {
		t.Errorf("order = %v, %v, want Beacon, Atlas", regs[0].TeamName, regs[1].TeamName)
	}
	if regs[0].ProjectIdea == "" {
		t.Error("ProjectIdea should be decoded")
	}
}

func TestStore_CreateInquiry(t *testing.T) {
	store := newTestStore(t, "supabase_create_inquiry")

	q := &storage.Inquiry{
		Name:        "Dana",
		Email:       "dana@corp.com",
		Company:     "Corp",
		InquiryType: "sponsorship",
		Amount:      "5000",
		Status:      storage.StatusNew,
	}
	if err := store.CreateInquiry(context.Background(), q); err != nil {
		t.Fatalf("CreateInquiry() error = %v", err)
	}
	if q.ID == "" {
		t.Error("ID should be filled from the response")
	}
}

func TestStore_CreateInquiryRejected(t *testing.T) {
	store := newTestStore(t, "supabase_inquiry_rejected")

	err := store.CreateInquiry(context.Background(), &storage.Inquiry{
		Name:        "Eve",
		Email:       "eve@example.com",
		InquiryType: "donation",
		Status:      storage.StatusNew,
	})
	if err == nil {
		t.Fatal("CreateInquiry() should fail")
	}
	if errors.Is(err, storage.ErrDuplicate) {
		t.Error("a policy failure is not a duplicate")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusUnauthorized)
	}
	if apiErr.Code != "42501" {
		t.Errorf("Code = %v, want 42501", apiErr.Code)
	}
}
