package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aironlab/backend/internal/events"
	"github.com/aironlab/backend/internal/mail"
	"github.com/aironlab/backend/internal/query"
)

type mockRepo struct {
	list         func(ctx context.Context, spec *query.Spec) ([]*Request, error)
	count        func(ctx context.Context, spec *query.Spec) (int, error)
	statusCounts func(ctx context.Context) (map[string]int, error)
	insert       func(ctx context.Context, r *Request) (*Request, error)
	updateStatus func(ctx context.Context, id int, status Status) (*Request, error)
	updateNotes  func(ctx context.Context, id int, notes string) (*Request, error)
	delete       func(ctx context.Context, id int) (*Request, error)
}

func (m *mockRepo) List(ctx context.Context, spec *query.Spec) ([]*Request, error) {
	if m.list != nil {
		return m.list(ctx, spec)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context, spec *query.Spec) (int, error) {
	if m.count != nil {
		return m.count(ctx, spec)
	}
	return 0, nil
}

func (m *mockRepo) StatusCounts(ctx context.Context) (map[string]int, error) {
	if m.statusCounts != nil {
		return m.statusCounts(ctx)
	}
	return map[string]int{}, nil
}

func (m *mockRepo) Insert(ctx context.Context, r *Request) (*Request, error) {
	if m.insert != nil {
		return m.insert(ctx, r)
	}
	out := *r
	out.ID = 1
	return &out, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int, status Status) (*Request, error) {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return nil, ErrNotFound
}

func (m *mockRepo) UpdateNotes(ctx context.Context, id int, notes string) (*Request, error) {
	if m.updateNotes != nil {
		return m.updateNotes(ctx, id, notes)
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id int) (*Request, error) {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil, ErrNotFound
}

type mockPublisher struct {
	received []events.ContactReceived
	err      error
}

func (m *mockPublisher) PublishPostPublished(context.Context, events.PostPublished) error {
	return nil
}

func (m *mockPublisher) PublishContactReceived(_ context.Context, e events.ContactReceived) error {
	m.received = append(m.received, e)
	return m.err
}

type mockMailer struct {
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func newTestService(repo *mockRepo) (*Service, *mockPublisher, *mockMailer) {
	pub := &mockPublisher{}
	mailer := &mockMailer{}
	svc := NewService(repo, pub, mailer, slog.Default(), "site@example.com", "admin@example.com", false)
	return svc, pub, mailer
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes and saves", func(t *testing.T) {
		var inserted *Request
		repo := &mockRepo{insert: func(_ context.Context, r *Request) (*Request, error) {
			inserted = r
			out := *r
			out.ID = 5
			return &out, nil
		}}
		svc, pub, mailer := newTestService(repo)
		got, err := svc.Create(ctx, CreateInput{
			Name:      "  Иван <script>alert(1)</script> ",
			Email:     "ivan@example.com",
			Message:   "Нужен бот",
			IPAddress: "10.0.0.1",
			UserAgent: "curl/8.0",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if got.ID != 5 {
			t.Errorf("got id %d", got.ID)
		}
		if inserted.Name != "Иван" {
			t.Errorf("name not sanitized: %q", inserted.Name)
		}
		if inserted.Subject != "Заявка с сайта" {
			t.Errorf("subject default missing: %q", inserted.Subject)
		}
		if inserted.IPAddress == nil || *inserted.IPAddress != "10.0.0.1" {
			t.Errorf("ip not captured: %v", inserted.IPAddress)
		}
		if len(pub.received) != 1 {
			t.Errorf("expected contact.request.received event, got %d", len(pub.received))
		}
		if len(mailer.sent) != 1 || mailer.sent[0].To != "admin@example.com" {
			t.Errorf("expected one admin mail, got %v", mailer.sent)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc, _, _ := newTestService(&mockRepo{})
		for _, in := range []CreateInput{
			{Email: "a@b.co", Message: "m"},
			{Name: "n", Message: "m"},
			{Name: "n", Email: "a@b.co"},
		} {
			_, err := svc.Create(ctx, in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("input %+v: got err %v, want ValidationError", in, err)
			}
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		svc, _, _ := newTestService(&mockRepo{})
		_, err := svc.Create(ctx, CreateInput{Name: "n", Email: "not-an-email", Message: "m"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("got err %v, want ValidationError", err)
		}
	})

	t.Run("length caps enforced", func(t *testing.T) {
		svc, _, _ := newTestService(&mockRepo{})
		_, err := svc.Create(ctx, CreateInput{
			Name:    strings.Repeat("n", 101),
			Email:   "a@b.co",
			Message: "m",
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("long name: got err %v", err)
		}
		_, err = svc.Create(ctx, CreateInput{
			Name:    "n",
			Email:   "a@b.co",
			Message: strings.Repeat("m", 5001),
		})
		if !errors.As(err, &verr) {
			t.Errorf("long message: got err %v", err)
		}
	})

	t.Run("mail failure does not fail create", func(t *testing.T) {
		repo := &mockRepo{}
		pub := &mockPublisher{err: errors.New("broker down")}
		mailer := &mockMailer{err: errors.New("smtp down")}
		svc := NewService(repo, pub, mailer, slog.Default(), "site@example.com", "admin@example.com", true)
		if _, err := svc.Create(ctx, CreateInput{Name: "n", Email: "a@b.co", Message: "m"}); err != nil {
			t.Errorf("Create: %v", err)
		}
	})

	t.Run("confirmation sent when enabled", func(t *testing.T) {
		mailer := &mockMailer{}
		svc := NewService(&mockRepo{}, &mockPublisher{}, mailer, slog.Default(), "site@example.com", "admin@example.com", true)
		if _, err := svc.Create(ctx, CreateInput{Name: "n", Email: "user@example.com", Message: "m"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(mailer.sent) != 2 {
			t.Fatalf("expected admin + confirmation mail, got %d", len(mailer.sent))
		}
		if mailer.sent[1].To != "user@example.com" {
			t.Errorf("confirmation to %q", mailer.sent[1].To)
		}
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("search and status filter", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		repo := &mockRepo{
			list: func(_ context.Context, spec *query.Spec) ([]*Request, error) {
				gotSQL, gotArgs = spec.Select()
				return nil, nil
			},
			statusCounts: func(context.Context) (map[string]int, error) {
				return map[string]int{"new": 3, "spam": 1}, nil
			},
		}
		svc, _, _ := newTestService(repo)
		res, err := svc.List(ctx, ListFilter{Status: "new", Search: "ivan"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		want := "SELECT * FROM contact_requests WHERE status = $1 AND (email ILIKE $2 OR name ILIKE $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		if gotSQL != want {
			t.Errorf("sql = %q, want %q", gotSQL, want)
		}
		if gotArgs[0] != "new" || gotArgs[1] != "%ivan%" {
			t.Errorf("args = %v", gotArgs)
		}
		if res.Statistics["new"] != 3 || res.Statistics["spam"] != 1 {
			t.Errorf("statistics = %v", res.Statistics)
		}
	})

	t.Run("no status filter by default", func(t *testing.T) {
		var gotSQL string
		repo := &mockRepo{
			list: func(_ context.Context, spec *query.Spec) ([]*Request, error) {
				gotSQL, _ = spec.Select()
				return nil, nil
			},
		}
		svc, _, _ := newTestService(repo)
		if _, err := svc.List(ctx, ListFilter{}); err != nil {
			t.Fatalf("List: %v", err)
		}
		if strings.Contains(gotSQL, "WHERE") {
			t.Errorf("sql = %q, want no WHERE", gotSQL)
		}
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid status", func(t *testing.T) {
		repo := &mockRepo{updateStatus: func(_ context.Context, id int, status Status) (*Request, error) {
			return &Request{ID: id, Status: status}, nil
		}}
		svc, _, _ := newTestService(repo)
		got, err := svc.UpdateStatus(ctx, 2, InProgress)
		if err != nil || got.Status != InProgress {
			t.Errorf("got %+v, err %v", got, err)
		}
	})

	t.Run("invalid status rejected without touching repo", func(t *testing.T) {
		called := false
		repo := &mockRepo{updateStatus: func(_ context.Context, id int, status Status) (*Request, error) {
			called = true
			return nil, nil
		}}
		svc, _, _ := newTestService(repo)
		_, err := svc.UpdateStatus(ctx, 2, "cancelled")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("got err %v, want ValidationError", err)
		}
		if called {
			t.Errorf("repo must not be called for invalid status")
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestService(&mockRepo{})
		if _, err := svc.UpdateStatus(ctx, 99, Completed); !errors.Is(err, ErrNotFound) {
			t.Errorf("got err %v, want ErrNotFound", err)
		}
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(&mockRepo{})
	if _, err := svc.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("got err %v, want ErrNotFound", err)
	}
}
