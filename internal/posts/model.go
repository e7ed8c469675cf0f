package posts

import (
	"time"

	"github.com/aironlab/backend/internal/query"
)

type Status string

const (
	Draft     Status = "draft"
	Published Status = "published"
	Archived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case Draft, Published, Archived:
		return true
	}
	return false
}

type Post struct {
	ID            int        `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Content       string     `db:"content" json:"content"`
	Excerpt       *string    `db:"excerpt" json:"excerpt,omitempty"`
	Author        string     `db:"author" json:"author"`
	FeaturedImage *string    `db:"featured_image" json:"featured_image,omitempty"`
	Status        Status     `db:"status" json:"status"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateInput struct {
	Title         string
	Content       string
	Excerpt       *string
	Author        string
	FeaturedImage *string
	Status        Status
}

// UpdateInput carries the fields present in a partial update request.
// Nil means the field was not supplied.
type UpdateInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Author        *string
	FeaturedImage *string
	Status        *Status
}

// ListFilter holds the raw, untrusted list parameters.
type ListFilter struct {
	Status string
	Limit  string
	Offset string
	Sort   string
	Order  string
}

type ListResult struct {
	Posts []*Post
	Meta  query.Meta
}

// Change is one column assignment in a dynamically built UPDATE.
type Change struct {
	Column string
	Value  any
}
