package contact

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/aironlab/backend/internal/events"
	"github.com/aironlab/backend/internal/mail"
	"github.com/aironlab/backend/internal/query"
	"github.com/aironlab/backend/internal/sanitize"
)

const (
	defaultLimit   = 20
	defaultSubject = "Заявка с сайта"
)

var sortable = map[string]bool{
	"created_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

type Service struct {
	repo    Repository
	pub     events.Publisher
	mailer  mail.Mailer
	logger  *slog.Logger
	from    string
	admin   string
	confirm bool
}

func NewService(repo Repository, pub events.Publisher, mailer mail.Mailer, logger *slog.Logger, from, admin string, confirm bool) *Service {
	return &Service{
		repo:    repo,
		pub:     pub,
		mailer:  mailer,
		logger:  logger,
		from:    from,
		admin:   admin,
		confirm: confirm,
	}
}

// Create validates and stores an intake request, then notifies the admin.
// Notification failures are logged and never surface to the submitter; the
// row is already saved.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Request, error) {
	name := sanitize.Clean(in.Name)
	email := sanitize.Clean(in.Email)
	message := sanitize.Clean(in.Message)

	if name == "" || email == "" || message == "" {
		return nil, validationf("name, email and message are required")
	}
	if !sanitize.ValidEmail(email) {
		return nil, validationf("invalid email address")
	}
	if utf8.RuneCountInString(name) > sanitize.MaxNameLen {
		return nil, validationf("name is too long (max %d characters)", sanitize.MaxNameLen)
	}
	if utf8.RuneCountInString(message) > sanitize.MaxMessageLen {
		return nil, validationf("message is too long (max %d characters)", sanitize.MaxMessageLen)
	}

	subject := sanitize.Clean(in.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	req := &Request{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if phone := sanitize.Clean(in.Phone); phone != "" {
		req.Phone = &phone
	}
	if in.IPAddress != "" {
		ip := in.IPAddress
		req.IPAddress = &ip
	}
	if in.UserAgent != "" {
		ua := in.UserAgent
		req.UserAgent = &ua
	}

	created, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, created)
	return created, nil
}

// List returns a filtered page plus full-table status statistics.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	spec := query.New("contact_requests", sortable, "created_at", defaultLimit).
		Sort(f.Sort, f.Order).
		Paginate(f.Limit, f.Offset)

	if f.Status != "" && f.Status != "all" {
		spec.Equal("status", f.Status)
	}
	spec.Contains(f.Search, "email", "name")

	rows, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, spec)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{Requests: rows, Meta: spec.MetaFor(total), Statistics: stats}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int, status Status) (*Request, error) {
	if !status.Valid() {
		return nil, validationf("invalid status %q, allowed: %v", status, AllowedStatuses)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) UpdateNotes(ctx context.Context, id int, notes string) (*Request, error) {
	return s.repo.UpdateNotes(ctx, id, sanitize.Clean(notes))
}

func (s *Service) Delete(ctx context.Context, id int) (*Request, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) notify(ctx context.Context, req *Request) {
	payload := events.ContactReceivedPayload{
		RequestID: req.ID,
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: req.CreatedAt,
	}
	if req.Phone != nil {
		payload.Phone = *req.Phone
	}
	if req.IPAddress != nil {
		payload.IPAddress = *req.IPAddress
	}

	if err := s.pub.PublishContactReceived(ctx, events.NewContactReceived(payload)); err != nil {
		s.logger.Warn("publish contact.request.received failed", "request_id", req.ID, "error", err)
	}

	if s.admin == "" {
		return
	}
	if err := s.mailer.Send(ctx, mail.AdminNotification(s.from, s.admin, payload)); err != nil {
		s.logger.Error("admin notification email failed", "request_id", req.ID, "error", err)
	}
	if s.confirm {
		if err := s.mailer.Send(ctx, mail.SenderConfirmation(s.from, payload)); err != nil {
			s.logger.Error("confirmation email failed", "request_id", req.ID, "error", err)
		}
	}
}
