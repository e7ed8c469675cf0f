package contact

import (
	"time"

	"github.com/aironlab/backend/internal/query"
)

type Status string

// Canonical status set. The intake form creates requests as New; the admin
// panel moves them through the rest.
const (
	New        Status = "new"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Spam       Status = "spam"
)

func (s Status) Valid() bool {
	switch s {
	case New, InProgress, Completed, Spam:
		return true
	}
	return false
}

// AllowedStatuses is the list quoted in validation messages.
var AllowedStatuses = []Status{New, InProgress, Completed, Spam}

type Request struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Subject    string    `db:"subject" json:"subject"`
	Message    string    `db:"message" json:"message"`
	Status     Status    `db:"status" json:"status"`
	AdminNotes *string   `db:"admin_notes" json:"admin_notes,omitempty"`
	IPAddress  *string   `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  *string   `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	IPAddress string
	UserAgent string
}

// ListFilter holds the raw, untrusted list parameters.
type ListFilter struct {
	Status string
	Search string
	Limit  string
	Offset string
	Sort   string
	Order  string
}

type ListResult struct {
	Requests   []*Request
	Meta       query.Meta
	Statistics map[string]int
}
