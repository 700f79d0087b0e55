package comments

import (
	"context"
	"sync"

	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/validate"
)

// Thread keeps the comments of a post as seen by one user. The counter is
// bumped locally after each write and the list is always fetched again.
type Thread struct {
	deps   Deps
	postID string
	actor  notifications.Actor

	mu   sync.Mutex
	view View
}

func NewThread(deps Deps, postID string, actor notifications.Actor) *Thread {
	return &Thread{deps: deps, postID: postID, actor: actor}
}

func (t *Thread) Load(ctx context.Context) (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := post.FindId(ctx, t.deps, t.postID)
	if err != nil {
		return t.view, err
	}
	list, err := List(ctx, t.deps, t.postID)
	if err != nil {
		return t.view, err
	}
	t.view = View{Count: p.CommentsCount, List: list}
	return t.view, nil
}

func (t *Thread) Add(ctx context.Context, text string) (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := Add(ctx, t.deps, t.postID, t.actor, validate.Comment{Comment: text}); err != nil {
		return t.view, err
	}
	t.view.Count++
	return t.refresh(ctx)
}

func (t *Thread) Delete(ctx context.Context, commentID string) (View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := Delete(ctx, t.deps, t.actor.ID, commentID); err != nil {
		return t.view, err
	}
	if t.view.Count > 0 {
		t.view.Count--
	}
	return t.refresh(ctx)
}

func (t *Thread) refresh(ctx context.Context) (View, error) {
	list, err := List(ctx, t.deps, t.postID)
	if err != nil {
		return t.view, err
	}
	t.view.List = list
	return t.view, nil
}
