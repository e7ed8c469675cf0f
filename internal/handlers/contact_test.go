package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aironlab/backend/internal/contact"
	"github.com/aironlab/backend/internal/query"
)

func TestContactHandler_Create(t *testing.T) {
	t.Run("created with minimal response", func(t *testing.T) {
		var inserted *contact.Request
		repo := &mockContactRepo{insert: func(_ context.Context, r *contact.Request) (*contact.Request, error) {
			inserted = r
			out := *r
			out.ID = 7
			out.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			return &out, nil
		}}
		router := testRouter(&mockPostsRepo{}, repo, "")

		rec, body := doJSON(t, router, http.MethodPost, "/api/contact",
			`{"name":"Иван","email":"ivan@example.com","message":"Нужен бот"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		data := body["data"].(map[string]any)
		if data["id"] != float64(7) {
			t.Errorf("id = %v", data["id"])
		}
		if _, ok := data["created_at"]; !ok {
			t.Errorf("created_at missing: %v", data)
		}
		if _, ok := data["email"]; ok {
			t.Errorf("intake response must not echo submitter data: %v", data)
		}
		if inserted.UserAgent != nil {
			t.Errorf("no user agent sent, got %v", *inserted.UserAgent)
		}
	})

	t.Run("captures forwarded client ip", func(t *testing.T) {
		var inserted *contact.Request
		repo := &mockContactRepo{insert: func(_ context.Context, r *contact.Request) (*contact.Request, error) {
			inserted = r
			out := *r
			out.ID = 1
			return &out, nil
		}}
		router := testRouter(&mockPostsRepo{}, repo, "")

		req := httptest.NewRequest(http.MethodPost, "/api/contact",
			bytes.NewBufferString(`{"name":"n","email":"a@b.co","message":"m"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if inserted.IPAddress == nil || *inserted.IPAddress != "203.0.113.9" {
			t.Errorf("ip = %v", inserted.IPAddress)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "")
		rec, body := doJSON(t, router, http.MethodPost, "/api/contact",
			`{"name":"n","email":"not-an-email","message":"m"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		if body["success"] != false {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "")
		rec, _ := doJSON(t, router, http.MethodPost, "/api/contact", `{broken`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestContactHandler_List(t *testing.T) {
	repo := &mockContactRepo{
		list: func(context.Context, *query.Spec) ([]*contact.Request, error) {
			return []*contact.Request{{ID: 1, Status: contact.New}}, nil
		},
		count: func(context.Context, *query.Spec) (int, error) { return 1, nil },
		statusCounts: func(context.Context) (map[string]int, error) {
			return map[string]int{"new": 1}, nil
		},
	}
	router := testRouter(&mockPostsRepo{}, repo, "")

	rec, body := doJSON(t, router, http.MethodGet, "/api/contact?status=new", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	stats := body["statistics"].(map[string]any)
	if stats["new"] != float64(1) {
		t.Errorf("statistics = %v", stats)
	}
	meta := body["meta"].(map[string]any)
	if meta["total"] != float64(1) {
		t.Errorf("meta = %v", meta)
	}
}

func TestContactHandler_UpdateStatus(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		repo := &mockContactRepo{updateStatus: func(_ context.Context, id int, status contact.Status) (*contact.Request, error) {
			return &contact.Request{ID: id, Status: status}, nil
		}}
		router := testRouter(&mockPostsRepo{}, repo, "")
		rec, body := doJSON(t, router, http.MethodPatch, "/api/contact/3/status",
			`{"status":"in_progress"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if body["data"].(map[string]any)["status"] != "in_progress" {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "")
		rec, _ := doJSON(t, router, http.MethodPatch, "/api/contact/3/status",
			`{"status":"cancelled"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "")
		rec, _ := doJSON(t, router, http.MethodPatch, "/api/contact/99/status",
			`{"status":"completed"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestContactHandler_Delete(t *testing.T) {
	router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "")
	rec, _ := doJSON(t, router, http.MethodDelete, "/api/contact/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouter_APIKeyGuard(t *testing.T) {
	router := testRouter(&mockPostsRepo{}, &mockContactRepo{}, "secret")

	t.Run("public routes stay open", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/posts", "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET /api/posts = %d", rec.Code)
		}
		rec, _ = doJSON(t, router, http.MethodPost, "/api/contact",
			`{"name":"n","email":"a@b.co","message":"m"}`)
		if rec.Code != http.StatusCreated {
			t.Errorf("POST /api/contact = %d", rec.Code)
		}
	})

	t.Run("admin routes require key", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/contact", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("no key: status = %d", rec.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
		req.Header.Set("X-API-Key", "secret")
		ok := httptest.NewRecorder()
		router.ServeHTTP(ok, req)
		if ok.Code != http.StatusOK {
			t.Errorf("with key: status = %d", ok.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/contact", nil)
		req.Header.Set("X-API-Key", "wrong")
		bad := httptest.NewRecorder()
		router.ServeHTTP(bad, req)
		if bad.Code != http.StatusUnauthorized {
			t.Errorf("wrong key: status = %d", bad.Code)
		}
	})
}
