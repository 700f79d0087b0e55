package comments

import (
	"context"
	"time"

	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/common"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/modules/helpers"
)

// ErrNotOwner is returned when someone else than the author deletes a comment.
var ErrNotOwner = &post.NotAllowed{Reason: "only the owner can delete this comment"}

// Deleting guards comments being deleted.
var Deleting = common.NewGuard()

// Add writes a comment of actor on postID and bumps the post counter. The
// post author is notified every time.
func Add(ctx context.Context, deps Deps, postID string, actor notifications.Actor, form validate.Comment) (Comment, error) {
	form.Comment = helpers.Text(form.Comment)
	if err := validate.Struct(form); err != nil {
		return Comment{}, err
	}
	p, err := post.FindId(ctx, deps, postID)
	if err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:           store.NewID(),
		PostID:       postID,
		UserID:       actor.ID,
		UserName:     actor.Username,
		UserPhotoURL: actor.ProfilePic,
		Content:      form.Comment,
		Created:      time.Now(),
	}
	if err := deps.Store().C("comments").Insert(ctx, c); err != nil {
		return Comment{}, err
	}
	if err := deps.Store().C("posts").Update(ctx, postID, store.Inc("commentsCount", 1)); err != nil {
		return c, err
	}

	if _, err := notifications.Notify(ctx, deps, p.UserID, notifications.COMMENT, postID, actor); err != nil {
		log.Errorf("Could not notify comment on %s: %v", postID, err)
	}
	notifications.MailComment(ctx, deps, p, actor)
	publish(ctx, deps, events.POSTS_COMMENT, c)
	return c, nil
}

// Delete removes a comment of actorID and decrements the post counter.
func Delete(ctx context.Context, deps Deps, actorID, id string) error {
	release, err := Deleting.Acquire(id)
	if err != nil {
		return err
	}
	defer release()

	c, err := FindId(ctx, deps, id)
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		return ErrNotOwner
	}
	if err := deps.Store().C("comments").RemoveId(ctx, id); err != nil {
		return err
	}
	err = deps.Store().C("posts").Update(ctx, c.PostID, store.Inc("commentsCount", -1))
	if err != nil && err != store.ErrNotFound {
		return err
	}
	publish(ctx, deps, events.COMMENT_DELETE, c)
	return nil
}

func publish(ctx context.Context, deps Deps, event string, c Comment) {
	err := deps.Broker().Publish(ctx, events.FeedChannel, events.Event{
		Name:   event,
		Params: map[string]interface{}{"id": c.PostID, "comment_id": c.ID, "user_id": c.UserID},
	})
	if err != nil {
		log.Errorf("Could not publish %s: %v", event, err)
	}
}
