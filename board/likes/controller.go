package likes

import (
	"context"
	"sync"

	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
)

// Controller keeps the like state of one user on one post and mirrors
// every remote write in it. Calls on a controller are serialized; two
// controllers over the same pair are not.
type Controller struct {
	deps   Deps
	postID string
	actor  notifications.Actor

	mu    sync.Mutex
	state State
}

func NewController(deps Deps, postID string, actor notifications.Actor) *Controller {
	return &Controller{deps: deps, postID: postID, actor: actor}
}

// Load the state from the stored like and post counter.
func (c *Controller) Load(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := post.FindId(ctx, c.deps, c.postID)
	if err != nil {
		return c.state, err
	}
	liked := false
	if c.actor.ID != "" {
		_, err = FindByUser(ctx, c.deps, c.postID, c.actor.ID)
		switch err {
		case nil:
			liked = true
		case ErrLikeNotFound:
		default:
			return c.state, err
		}
	}
	c.state = State{Liked: liked, Count: p.LikesCount}
	return c.state, nil
}

func (c *Controller) Like(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := Add(ctx, c.deps, c.postID, c.actor); err != nil {
		return c.state, err
	}
	c.state.Liked = true
	c.state.Count++
	return c.state, nil
}

func (c *Controller) Unlike(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := Unlike(ctx, c.deps, c.postID, c.actor.ID); err != nil {
		return c.state, err
	}
	c.state.Liked = false
	if c.state.Count > 0 {
		c.state.Count--
	}
	return c.state, nil
}

// Toggle likes or unlikes depending on the local state.
func (c *Controller) Toggle(ctx context.Context) (State, error) {
	if c.State().Liked {
		return c.Unlike(ctx)
	}
	return c.Like(ctx)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
