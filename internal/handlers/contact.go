package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aironlab/backend/internal/contact"
)

type ContactHandler struct {
	svc        *contact.Service
	logger     *slog.Logger
	production bool
}

func NewContactHandler(svc *contact.Service, logger *slog.Logger, production bool) *ContactHandler {
	return &ContactHandler{
		svc:        svc,
		logger:     logger,
		production: production,
	}
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type UpdateContactStatusRequest struct {
	Status contact.Status `json:"status"`
}

type UpdateContactNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// Create is the public intake endpoint. The response exposes only the id
// and timestamp; notification delivery never affects the outcome.
func (h *ContactHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		created, err := h.svc.Create(r.Context(), contact.CreateInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Subject:   req.Subject,
			Message:   req.Message,
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			var verr *contact.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Msg)
				return
			}
			h.logger.Error("create contact request failed", "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "request received",
			"data": map[string]any{
				"id":         created.ID,
				"created_at": created.CreatedAt,
			},
		})
	}
}

func (h *ContactHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := h.svc.List(r.Context(), contact.ListFilter{
			Status: q.Get("status"),
			Search: q.Get("search"),
			Limit:  q.Get("limit"),
			Offset: q.Get("offset"),
			Sort:   q.Get("sort"),
			Order:  q.Get("order"),
		})
		if err != nil {
			h.logger.Error("list contact requests failed", "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       res.Requests,
			"meta":       res.Meta,
			"statistics": res.Statistics,
		})
	}
}

func (h *ContactHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request id")
			return
		}

		var req UpdateContactStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		updated, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			var verr *contact.ValidationError
			switch {
			case errors.As(err, &verr):
				writeError(w, http.StatusBadRequest, verr.Msg)
			case errors.Is(err, contact.ErrNotFound):
				writeError(w, http.StatusNotFound, "contact request not found")
			default:
				h.logger.Error("update contact status failed", "id", id, "error", err)
				writeServerError(w, h.production, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "status updated",
			"data":    updated,
		})
	}
}

func (h *ContactHandler) UpdateNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request id")
			return
		}

		var req UpdateContactNotesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		updated, err := h.svc.UpdateNotes(r.Context(), id, req.AdminNotes)
		if err != nil {
			if errors.Is(err, contact.ErrNotFound) {
				writeError(w, http.StatusNotFound, "contact request not found")
				return
			}
			h.logger.Error("update contact notes failed", "id", id, "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "notes updated",
			"data":    updated,
		})
	}
}

func (h *ContactHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request id")
			return
		}

		deleted, err := h.svc.Delete(r.Context(), id)
		if err != nil {
			if errors.Is(err, contact.ErrNotFound) {
				writeError(w, http.StatusNotFound, "contact request not found")
				return
			}
			h.logger.Error("delete contact request failed", "id", id, "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "request deleted",
			"data":    deleted,
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
