package events

import (
	"context"
	"sync"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("events")

// BufferSize is the capacity of each subscription channel.
var BufferSize = 16

// Event is a named change carried between the board and its listeners.
type Event struct {
	Name   string                 `json:"event"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Broker fans events out to subscribers of a channel.
type Broker interface {
	Publish(ctx context.Context, channel string, e Event) error
	Subscribe(ctx context.Context, channel string) (*Subscription, error)
	Close() error
}

// Subscription delivers events until closed or until its context ends.
type Subscription struct {
	C     <-chan Event
	close func()
	once  sync.Once
}

// Close stops the delivery and releases the subscription.
func (s *Subscription) Close() {
	s.once.Do(s.close)
}

// Local is an in-process broker.
type Local struct {
	mu       sync.RWMutex
	channels map[string]map[chan Event]struct{}
}

// NewLocal returns a broker delivering within this process.
func NewLocal() *Local {
	return &Local{channels: map[string]map[chan Event]struct{}{}}
}

// Publish delivers e to every subscriber of channel. A subscriber whose
// buffer is full misses the event.
func (l *Local) Publish(ctx context.Context, channel string, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for ch := range l.channels[channel] {
		select {
		case ch <- e:
		default:
			log.Warningf("Dropping %s event for a slow subscriber of %s", e.Name, channel)
		}
	}
	return nil
}

// Subscribe registers a listener on channel.
func (l *Local) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := make(chan Event, BufferSize)
	l.mu.Lock()
	if _, exists := l.channels[channel]; !exists {
		l.channels[channel] = map[chan Event]struct{}{}
	}
	l.channels[channel][ch] = struct{}{}
	l.mu.Unlock()

	done := make(chan struct{})
	sub := &Subscription{C: ch}
	sub.close = func() {
		close(done)
		l.mu.Lock()
		delete(l.channels[channel], ch)
		if len(l.channels[channel]) == 0 {
			delete(l.channels, channel)
		}
		l.mu.Unlock()
		close(ch)
	}
	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-done:
		}
	}()
	return sub, nil
}

// Close is a no-op for the local broker.
func (l *Local) Close() error {
	return nil
}

// NotificationsChannel is where changes to a user's notifications are published.
func NotificationsChannel(userID string) string {
	return "notifications:" + userID
}

// FeedChannel receives post level changes.
const FeedChannel = "feed"

const (
	POSTS_NEW            = "posts:new"
	POSTS_DELETE         = "posts:delete"
	POSTS_LIKE           = "posts:like"
	POSTS_UNLIKE         = "posts:unlike"
	POSTS_COMMENT        = "posts:comment"
	COMMENT_DELETE       = "comments:delete"
	NOTIFICATIONS_CHANGE = "notifications:change"
)
