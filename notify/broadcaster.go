// Package notify defines the push-delivery collaborator. The backend only
// ever asks for "broadcast event E to audience A"; the transport (rooms,
// sockets, fan-out) lives elsewhere.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Event names emitted by the content and engagement services.
const (
	EventNewComment = "new_comment"
	EventBlogLiked  = "blog_liked"
	EventNewFollow  = "new_follower"
)

// BlogRoom is the audience for everything happening on one blog.
func BlogRoom(blogID string) string {
	return fmt.Sprintf("blog_%s", blogID)
}

// UserRoom is a user's personal notification audience.
func UserRoom(userID string) string {
	return fmt.Sprintf("user_%s", userID)
}

// Message is the payload handed to the transport.
type Message struct {
	Room       string         `json:"room"`
	Event      string         `json:"event"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Broadcaster consumes broadcast requests. Delivery failures are the
// transport's problem; services log and move on.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg Message) error
}

// BroadcasterFunc adapts a function to the Broadcaster interface.
type BroadcasterFunc func(ctx context.Context, msg Message) error

// Broadcast implements Broadcaster.
func (f BroadcasterFunc) Broadcast(ctx context.Context, msg Message) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(context.Context, Message) error {
	return nil
}

// Normalize returns a usable Broadcaster, substituting a noop for nil.
func Normalize(b Broadcaster) Broadcaster {
	if b == nil {
		return noopBroadcaster{}
	}
	return b
}
