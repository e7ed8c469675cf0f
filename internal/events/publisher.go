package events

import "context"

type Publisher interface {
	PublishPostPublished(ctx context.Context, e PostPublished) error
	PublishContactReceived(ctx context.Context, e ContactReceived) error
}
