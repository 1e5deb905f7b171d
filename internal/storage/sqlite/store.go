package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

// Store is a SQLite implementation of storage.Store
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// New creates a new SQLite store
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS team_registrations (
			id TEXT PRIMARY KEY,
			team_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			team_members TEXT NOT NULL,
			project_idea TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_team_registrations_email ON team_registrations(email COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_team_registrations_status ON team_registrations(status)`,
		`CREATE TABLE IF NOT EXISTS donation_inquiries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			company TEXT,
			phone TEXT,
			inquiry_type TEXT NOT NULL DEFAULT 'donation',
			amount TEXT,
			message TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_donation_inquiries_status ON donation_inquiries(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

// nullable stores empty optional fields as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Store) CreateRegistration(ctx context.Context, r *storage.Registration) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO team_registrations (id, team_name, email, phone, team_members, project_idea, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.TeamName, r.Email, nullable(r.Phone), r.TeamMembers, nullable(r.ProjectIdea), r.Status, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registration for %s: %w", r.Email, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

const registrationColumns = `id, team_name, email, phone, team_members, project_idea, status, created_at`

func scanRegistration(row interface{ Scan(...any) error }) (*storage.Registration, error) {
	var r storage.Registration
	var phone, idea sql.NullString
	if err := row.Scan(&r.ID, &r.TeamName, &r.Email, &phone, &r.TeamMembers, &idea, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Phone = phone.String
	r.ProjectIdea = idea.String
	return &r, nil
}

func (s *Store) GetRegistration(ctx context.Context, id string) (*storage.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM team_registrations WHERE id = ?`

	r, err := scanRegistration(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("registration %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return r, nil
}

// listQuery builds a filtered, newest-first select.
func listQuery(columns, table string, opts storage.ListOptions) (string, []any) {
	query := `SELECT ` + columns + ` FROM ` + table
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, opts.Status)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}
	return query, args
}

func (s *Store) ListRegistrations(ctx context.Context, opts storage.ListOptions) ([]*storage.Registration, error) {
	query, args := listQuery(registrationColumns, "team_registrations", opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var result []*storage.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) CreateInquiry(ctx context.Context, q *storage.Inquiry) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO donation_inquiries (id, name, email, company, phone, inquiry_type, amount, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		q.ID, q.Name, q.Email, nullable(q.Company), nullable(q.Phone), q.InquiryType,
		nullable(q.Amount), nullable(q.Message), q.Status, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

const inquiryColumns = `id, name, email, company, phone, inquiry_type, amount, message, status, created_at`

func (s *Store) ListInquiries(ctx context.Context, opts storage.ListOptions) ([]*storage.Inquiry, error) {
	query, args := listQuery(inquiryColumns, "donation_inquiries", opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var result []*storage.Inquiry
	for rows.Next() {
		var q storage.Inquiry
		var company, phone, amount, message sql.NullString
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &company, &phone, &q.InquiryType, &amount, &message, &q.Status, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		q.Company, q.Phone, q.Amount, q.Message = company.String, phone.String, amount.String, message.String
		result = append(result, &q)
	}
	return result, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
