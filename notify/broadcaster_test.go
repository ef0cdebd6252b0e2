package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperstack/blogd/notify"
)

func TestRooms(t *testing.T) {
	assert.Equal(t, "blog_abc", notify.BlogRoom("abc"))
	assert.Equal(t, "user_abc", notify.UserRoom("abc"))
}

func TestNormalize(t *testing.T) {
	t.Run("nil becomes a noop", func(t *testing.T) {
		b := notify.Normalize(nil)
		require.NotNil(t, b)
		assert.NoError(t, b.Broadcast(context.Background(), notify.Message{}))
	})

	t.Run("non-nil passes through", func(t *testing.T) {
		var got notify.Message
		fn := notify.BroadcasterFunc(func(ctx context.Context, msg notify.Message) error {
			got = msg
			return nil
		})

		msg := notify.Message{
			Room:       notify.BlogRoom("b1"),
			Event:      notify.EventBlogLiked,
			Payload:    map[string]any{"blog_id": "b1"},
			OccurredAt: time.Now(),
		}
		require.NoError(t, notify.Normalize(fn).Broadcast(context.Background(), msg))
		assert.Equal(t, msg, got)
	})
}

func TestBroadcasterFuncNilSafe(t *testing.T) {
	var fn notify.BroadcasterFunc
	assert.NoError(t, fn.Broadcast(context.Background(), notify.Message{}))
}
