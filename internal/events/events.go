package events

import "time"

const (
	TypePostPublished   = "post.published"
	TypeContactReceived = "contact.request.received"
)

type PostPublishedPayload struct {
	PostID int    `json:"post_id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
}

type PostPublished struct {
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   PostPublishedPayload `json:"payload"`
}

func NewPostPublished(postID int, slug, title string) PostPublished {
	return PostPublished{
		Type:      TypePostPublished,
		Timestamp: time.Now().UTC(),
		Payload: PostPublishedPayload{
			PostID: postID,
			Slug:   slug,
			Title:  title,
		},
	}
}

type ContactReceivedPayload struct {
	RequestID int       `json:"request_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactReceived struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   ContactReceivedPayload `json:"payload"`
}

func NewContactReceived(p ContactReceivedPayload) ContactReceived {
	return ContactReceived{
		Type:      TypeContactReceived,
		Timestamp: time.Now().UTC(),
		Payload:   p,
	}
}
