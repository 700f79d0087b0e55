package likes

import (
	"context"
	"time"

	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/store"
)

// Add records the like of actor on postID, then increments the post
// counter. The like is removed again when the increment fails.
func Add(ctx context.Context, deps Deps, postID string, actor notifications.Actor) error {
	p, err := post.FindId(ctx, deps, postID)
	if err != nil {
		return err
	}
	if _, err := FindByUser(ctx, deps, postID, actor.ID); err == nil {
		return ErrAlreadyLiked
	} else if err != ErrLikeNotFound {
		return err
	}

	like := Like{
		ID:      ID(postID, actor.ID),
		UserID:  actor.ID,
		PostID:  postID,
		Created: time.Now(),
	}
	c := deps.Store().C("likes")
	if err := c.Insert(ctx, like); err == store.ErrDuplicate {
		return ErrAlreadyLiked
	} else if err != nil {
		return err
	}
	if err := deps.Store().C("posts").Update(ctx, postID, store.Inc("likesCount", 1)); err != nil {
		if rerr := c.RemoveId(ctx, like.ID); rerr != nil {
			log.Errorf("Could not roll back like %s: %v", like.ID, rerr)
		}
		return err
	}

	if _, err := notifications.Notify(ctx, deps, p.UserID, notifications.LIKE, postID, actor); err != nil {
		log.Errorf("Could not notify like on %s: %v", postID, err)
	}
	publish(ctx, deps, events.POSTS_LIKE, postID, actor.ID)
	return nil
}

// Unlike removes the like of userID on postID and decrements the counter.
func Unlike(ctx context.Context, deps Deps, postID, userID string) error {
	like, err := FindByUser(ctx, deps, postID, userID)
	if err != nil {
		return err
	}
	if err := deps.Store().C("likes").RemoveId(ctx, like.ID); err != nil {
		return err
	}
	if err := deps.Store().C("posts").Update(ctx, postID, store.Inc("likesCount", -1)); err != nil {
		return err
	}
	publish(ctx, deps, events.POSTS_UNLIKE, postID, userID)
	return nil
}

func publish(ctx context.Context, deps Deps, event, postID, userID string) {
	err := deps.Broker().Publish(ctx, events.FeedChannel, events.Event{
		Name:   event,
		Params: map[string]interface{}{"id": postID, "user_id": userID},
	})
	if err != nil {
		log.Errorf("Could not publish %s: %v", event, err)
	}
}
