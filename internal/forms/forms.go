// Package forms handles the team registration and donation inquiry posts.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vibecodeutah/hackathon-site/internal/server"
	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

// Redirect targets after a successful post.
const (
	RegisterSuccessPath = "/join/success"
	DonateSuccessPath   = "/donate/success"
)

// Messages shown to the visitor.
const (
	MsgRegisterMissing = "Missing required fields: team name, email, and team members are required"
	MsgInvalidEmail    = "Invalid email address"
	MsgDuplicateEmail  = "This email is already registered. Contact us if you need to update your registration."
	MsgRegisterFailed  = "Failed to save registration. Please try again."
	MsgDonateMissing   = "Name and email are required"
	MsgDonateFailed    = "Failed to save inquiry. Please try again."
	MsgUnexpected      = "An unexpected error occurred"
)

const (
	defaultInquiryType   = "donation"
	maxFormBytes         = 1 << 20
	maxMultipartInMemory = 1 << 20
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Response is the JSON body of a failed post.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	registrations storage.RegistrationStore
	inquiries     storage.InquiryStore
	logger        *slog.Logger
}

func New(store storage.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registrations: store, inquiries: store, logger: logger}
}

// Mount registers the form endpoints on r.
func (h *Handler) Mount(r chi.Router) {
	r.Post("/api/register", h.Register)
	r.Post("/api/donate", h.Donate)
}

// Register stores a team registration and redirects to the thank-you page.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server.AddLogField(ctx, "form", "register")

	if err := parseForm(w, r); err != nil {
		server.AddError(ctx, err)
		writeError(w, http.StatusInternalServerError, MsgUnexpected)
		return
	}

	reg := &storage.Registration{
		TeamName:    field(r, "team-name"),
		Email:       field(r, "email"),
		Phone:       field(r, "phone"),
		TeamMembers: field(r, "team-members"),
		ProjectIdea: field(r, "project-idea"),
		Status:      storage.StatusPending,
	}

	if reg.TeamName == "" || reg.Email == "" || reg.TeamMembers == "" {
		writeError(w, http.StatusBadRequest, MsgRegisterMissing)
		return
	}
	if !ValidEmail(reg.Email) {
		writeError(w, http.StatusBadRequest, MsgInvalidEmail)
		return
	}

	if err := h.registrations.CreateRegistration(ctx, reg); err != nil {
		server.AddError(ctx, err)
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, MsgDuplicateEmail)
			return
		}
		h.logger.Error("failed to save registration",
			slog.String("request_id", server.GetRequestID(ctx)),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, MsgRegisterFailed)
		return
	}

	server.AddLogField(ctx, "registration_id", reg.ID)
	http.Redirect(w, r, RegisterSuccessPath, http.StatusFound)
}

// Donate stores a donation or sponsorship inquiry.
func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server.AddLogField(ctx, "form", "donate")

	if err := parseForm(w, r); err != nil {
		server.AddError(ctx, err)
		writeError(w, http.StatusInternalServerError, MsgUnexpected)
		return
	}

	q := &storage.Inquiry{
		Name:        field(r, "name"),
		Email:       field(r, "email"),
		Company:     field(r, "company"),
		Phone:       field(r, "phone"),
		InquiryType: field(r, "inquiry-type"),
		Amount:      field(r, "amount"),
		Message:     field(r, "message"),
		Status:      storage.StatusNew,
	}
	if q.InquiryType == "" {
		q.InquiryType = defaultInquiryType
	}

	if q.Name == "" || q.Email == "" {
		writeError(w, http.StatusBadRequest, MsgDonateMissing)
		return
	}

	if err := h.inquiries.CreateInquiry(ctx, q); err != nil {
		server.AddError(ctx, err)
		h.logger.Error("failed to save inquiry",
			slog.String("request_id", server.GetRequestID(ctx)),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, MsgDonateFailed)
		return
	}

	server.AddLogField(ctx, "inquiry_type", q.InquiryType)
	http.Redirect(w, r, DonateSuccessPath, http.StatusFound)
}

// parseForm accepts urlencoded and multipart bodies.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	// ParseMultipartForm swallows ParseForm errors for other content types.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartInMemory); err != nil {
			return fmt.Errorf("parse multipart form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Error: msg})
}
