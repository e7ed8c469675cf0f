package posts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aironlab/backend/internal/events"
	"github.com/aironlab/backend/internal/query"
	"github.com/aironlab/backend/internal/sanitize"
	"github.com/aironlab/backend/internal/slug"
	"github.com/aironlab/backend/internal/storage"
)

const defaultLimit = 10

var sortable = map[string]bool{
	"created_at":   true,
	"published_at": true,
	"title":        true,
	"updated_at":   true,
}

type Service struct {
	repo    Repository
	store   storage.Storage
	pub     events.Publisher
	logger  *slog.Logger
	bucket  string
	region  string
	baseURL string
}

func NewService(repo Repository, store storage.Storage, pub events.Publisher, logger *slog.Logger, bucket, region, baseURL string) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		pub:     pub,
		logger:  logger,
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
	}
}

// List returns a page of posts plus pagination metadata. The status filter
// defaults to published; "all" disables it.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	spec := query.New("posts", sortable, "created_at", defaultLimit).
		Sort(f.Sort, f.Order).
		Paginate(f.Limit, f.Offset)

	status := f.Status
	if status == "" {
		status = string(Published)
	}
	if status != "all" {
		spec.Equal("status", status)
	}

	rows, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, spec)
	if err != nil {
		return nil, err
	}

	return &ListResult{Posts: rows, Meta: spec.MetaFor(total)}, nil
}

// GetByIDOrSlug resolves numeric identifiers as ids, anything else as a slug.
func (s *Service) GetByIDOrSlug(ctx context.Context, identifier string) (*Post, error) {
	if id, err := strconv.Atoi(identifier); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetBySlug(ctx, identifier)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Post, error) {
	title := sanitize.Clean(in.Title)
	if title == "" {
		return nil, validationf("title is required")
	}
	if utf8.RuneCountInString(title) > sanitize.MaxTitleLen {
		return nil, validationf("title is too long (max %d characters)", sanitize.MaxTitleLen)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, validationf("content is required")
	}

	status := in.Status
	if status == "" {
		status = Draft
	}
	if !status.Valid() {
		return nil, validationf("invalid status %q", status)
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = "Admin"
	}

	candidate := slug.Make(title)
	taken, err := s.repo.SlugTaken(ctx, candidate, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		candidate = slug.Disambiguate(candidate)
	}

	var publishedAt *time.Time
	if status == Published {
		now := time.Now()
		publishedAt = &now
	}

	created, err := s.repo.Insert(ctx, &Post{
		Title:         title,
		Slug:          candidate,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Author:        author,
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		PublishedAt:   publishedAt,
	})
	if err != nil {
		return nil, err
	}

	if created.Status == Published {
		s.announcePublished(ctx, created)
	}
	return created, nil
}

// Update applies exactly the supplied fields. A title change regenerates the
// slug; a transition to published stamps published_at once.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (*Post, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []Change

	if in.Title != nil {
		title := sanitize.Clean(*in.Title)
		if title == "" {
			return nil, validationf("title is required")
		}
		if utf8.RuneCountInString(title) > sanitize.MaxTitleLen {
			return nil, validationf("title is too long (max %d characters)", sanitize.MaxTitleLen)
		}
		changes = append(changes, Change{Column: "title", Value: title})

		if title != current.Title {
			candidate := slug.Make(title)
			taken, err := s.repo.SlugTaken(ctx, candidate, id)
			if err != nil {
				return nil, err
			}
			if taken {
				candidate = slug.Disambiguate(candidate)
			}
			changes = append(changes, Change{Column: "slug", Value: candidate})
		}
	}

	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, validationf("content cannot be empty")
		}
		changes = append(changes, Change{Column: "content", Value: *in.Content})
	}

	if in.Excerpt != nil {
		changes = append(changes, Change{Column: "excerpt", Value: sanitize.Clean(*in.Excerpt)})
	}

	if in.Author != nil {
		changes = append(changes, Change{Column: "author", Value: sanitize.Clean(*in.Author)})
	}

	if in.FeaturedImage != nil {
		changes = append(changes, Change{Column: "featured_image", Value: *in.FeaturedImage})
	}

	becamePublished := false
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, validationf("invalid status %q", *in.Status)
		}
		changes = append(changes, Change{Column: "status", Value: *in.Status})
		if *in.Status == Published && current.PublishedAt == nil {
			changes = append(changes, Change{Column: "published_at", Value: time.Now()})
			becamePublished = true
		}
	}

	if len(changes) == 0 {
		return nil, ErrNoFields
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	if becamePublished {
		s.announcePublished(ctx, updated)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) (*Post, error) {
	return s.repo.Delete(ctx, id)
}

// SetFeaturedImage uploads the image to object storage and records its
// public URL on the post.
func (s *Service) SetFeaturedImage(ctx context.Context, id int, filename, contentType string, body io.Reader) (*Post, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("uploads/posts/%d/%s", id, path.Base(filename))
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("upload featured image: %w", err)
	}

	url := s.assetURL(key)
	return s.repo.Update(ctx, id, []Change{{Column: "featured_image", Value: url}})
}

func (s *Service) assetURL(key string) string {
	if s.baseURL != "" {
		return strings.TrimRight(s.baseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// announcePublished is best-effort; a broker outage never fails the write.
func (s *Service) announcePublished(ctx context.Context, p *Post) {
	if err := s.pub.PublishPostPublished(ctx, events.NewPostPublished(p.ID, p.Slug, p.Title)); err != nil {
		s.logger.Warn("publish post.published event failed", "post_id", p.ID, "error", err)
	}
}
