package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aironlab/backend/internal/posts"
)

type PostsHandler struct {
	svc        *posts.Service
	logger     *slog.Logger
	production bool
}

func NewPostsHandler(svc *posts.Service, logger *slog.Logger, production bool) *PostsHandler {
	return &PostsHandler{
		svc:        svc,
		logger:     logger,
		production: production,
	}
}

type CreatePostRequest struct {
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Excerpt       *string      `json:"excerpt"`
	Author        string       `json:"author"`
	FeaturedImage *string      `json:"featured_image"`
	Status        posts.Status `json:"status"`
}

type UpdatePostRequest struct {
	Title         *string       `json:"title"`
	Content       *string       `json:"content"`
	Excerpt       *string       `json:"excerpt"`
	Author        *string       `json:"author"`
	FeaturedImage *string       `json:"featured_image"`
	Status        *posts.Status `json:"status"`
}

func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := h.svc.List(r.Context(), posts.ListFilter{
			Status: q.Get("status"),
			Limit:  q.Get("limit"),
			Offset: q.Get("offset"),
			Sort:   q.Get("sort"),
			Order:  q.Get("order"),
		})
		if err != nil {
			h.logger.Error("list posts failed", "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    res.Posts,
			"meta":    res.Meta,
		})
	}
}

func (h *PostsHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idOrSlug := chi.URLParam(r, "idOrSlug")

		post, err := h.svc.GetByIDOrSlug(r.Context(), idOrSlug)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			h.logger.Error("get post failed", "identifier", idOrSlug, "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": post})
	}
}

func (h *PostsHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		post, err := h.svc.Create(r.Context(), posts.CreateInput{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Author:        req.Author,
			FeaturedImage: req.FeaturedImage,
			Status:        req.Status,
		})
		if err != nil {
			var verr *posts.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Msg)
				return
			}
			h.logger.Error("create post failed", "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "post created",
			"data":    post,
		})
	}
}

func (h *PostsHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		post, err := h.svc.Update(r.Context(), id, posts.UpdateInput{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Author:        req.Author,
			FeaturedImage: req.FeaturedImage,
			Status:        req.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, posts.ErrNotFound):
				writeError(w, http.StatusNotFound, "post not found")
			case errors.Is(err, posts.ErrNoFields):
				writeError(w, http.StatusBadRequest, "no fields to update")
			default:
				var verr *posts.ValidationError
				if errors.As(err, &verr) {
					writeError(w, http.StatusBadRequest, verr.Msg)
					return
				}
				h.logger.Error("update post failed", "id", id, "error", err)
				writeServerError(w, h.production, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "post updated",
			"data":    post,
		})
	}
}

func (h *PostsHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		post, err := h.svc.Delete(r.Context(), id)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			h.logger.Error("delete post failed", "id", id, "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "post deleted",
			"data":    post,
		})
	}
}

// UploadImage stores a multipart featured image and records its URL.
func (h *PostsHandler) UploadImage() http.HandlerFunc {
	const maxUpload = 10 << 20

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		if err := r.ParseMultipartForm(maxUpload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "image file is required")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		post, err := h.svc.SetFeaturedImage(r.Context(), id, header.Filename, contentType, file)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			h.logger.Error("upload featured image failed", "id", id, "error", err)
			writeServerError(w, h.production, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "featured image updated",
			"data":    post,
		})
	}
}
