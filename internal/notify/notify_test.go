package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	got  []string
	fail bool
}

func (p *recordingPublisher) Publish(_ context.Context, session string, n Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, session+":"+n.Message)
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

func TestHub_DrainIsPerSessionAndOrdered(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil)

	hub.For("a").Success(ctx, "Product added to cart")
	hub.For("b").Error(ctx, "Checkout failed")
	hub.For("a").Success(ctx, "Product removed from cart")

	got := hub.Drain("a")
	require.Len(t, got, 2)
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, "Product added to cart", got[0].Message)
	assert.Equal(t, "Product removed from cart", got[1].Message)

	assert.Empty(t, hub.Drain("a"))

	b := hub.Drain("b")
	require.Len(t, b, 1)
	assert.Equal(t, LevelError, b[0].Level)
}

func TestHub_InboxIsBounded(t *testing.T) {
	hub := NewHub(nil)
	n := hub.For("a")
	for i := range maxPending + 5 {
		n.Success(context.Background(), fmt.Sprintf("msg %d", i))
	}
	got := hub.Drain("a")
	require.Len(t, got, maxPending)
	assert.Equal(t, "msg 5", got[0].Message)
}

func TestHub_PublisherFailureDoesNotDropNotification(t *testing.T) {
	pub := &recordingPublisher{fail: true}
	hub := NewHub(pub)

	hub.For("s").Error(context.Background(), "Failed to delete product")

	assert.Equal(t, []string{"s:Failed to delete product"}, pub.got)
	assert.Len(t, hub.Drain("s"), 1)
}
