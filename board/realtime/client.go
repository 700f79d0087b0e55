package realtime

import (
	"context"
	"sync"

	"github.com/artworked/core/board/notifications"
	"github.com/artworked/core/core/user"
)

type writer interface {
	Write(data string)
}

// Client is one connected socket and the user it authenticated as.
type Client struct {
	Raw    writer
	UserID string
	Read   chan socketEvent

	deps deps
	mu   sync.Mutex
	stop context.CancelFunc
}

func newClient(d deps, raw writer) *Client {
	return &Client{
		Raw:  raw,
		Read: make(chan socketEvent, 8),
		deps: d,
	}
}

func (c *Client) readWorker(ctx context.Context) {
	defer c.unwatch()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-c.Read:
			c.handle(ctx, e)
		}
	}
}

func (c *Client) handle(ctx context.Context, e socketEvent) {
	switch e.Event {
	case "auth":
		token, exists := e.Params["token"].(string)
		if !exists {
			log.Warning("Could not authenticate socket client: missing token")
			c.fail("missing token")
			return
		}

		id, err := c.deps.Sessions().Parse(token)
		if err != nil {
			log.Warningf("Could not parse socket client token: %v", err)
			c.fail(err.Error())
			return
		}

		profile, err := user.Resolve(ctx, c.deps, id)
		if err != nil {
			log.Warningf("Could not find user from socket token: %v", err)
			c.fail(err.Error())
			return
		}

		c.Raw.Write(socketEvent{
			Event: "auth:my",
			Params: map[string]interface{}{
				"user": profile,
			},
		}.encode())
		c.watch(ctx, id)
	case "auth:clean":
		c.unwatch()
		c.Raw.Write(socketEvent{
			Event: "auth:cleaned",
		}.encode())
	case "notifications:read":
		c.mu.Lock()
		id := c.UserID
		c.mu.Unlock()
		if id == "" {
			c.fail("not authenticated")
			return
		}

		var err error
		if n, exists := e.Params["id"].(string); exists && n != "" {
			err = notifications.MarkRead(ctx, c.deps, id, n)
		} else {
			_, err = notifications.MarkAllRead(ctx, c.deps, id)
		}
		if err != nil {
			log.Errorf("Could not mark notifications of %s as read: %v", id, err)
		}
	}
}

// watch replaces the current notifications feed with the one of userID.
func (c *Client) watch(ctx context.Context, userID string) {
	c.unwatch()

	ctx, cancel := context.WithCancel(ctx)
	feed, err := notifications.Watch(ctx, c.deps, userID)
	if err != nil {
		cancel()
		log.Errorf("Could not watch notifications of %s: %v", userID, err)
		return
	}

	c.mu.Lock()
	c.UserID, c.stop = userID, cancel
	c.mu.Unlock()

	go func() {
		for snap := range feed {
			c.Raw.Write(socketEvent{
				Event: "notifications",
				Params: map[string]interface{}{
					"list":   snap.List,
					"unread": snap.Unread,
				},
			}.encode())
		}
	}()
}

func (c *Client) unwatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		c.stop()
	}
	c.UserID, c.stop = "", nil
}

func (c *Client) fail(reason string) {
	c.Raw.Write(socketEvent{
		Event: "auth:error",
		Params: map[string]interface{}{
			"message": reason,
		},
	}.encode())
}
