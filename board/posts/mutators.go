package post

import (
	"context"
	"time"

	"github.com/artworked/core/core/common"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/modules/helpers"
	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/mgo.v2/bson"
)

// Deleting guards posts being deleted.
var Deleting = common.NewGuard()

// Create validates the submission, uploads its picture and stores the post
// with zeroed counters.
func Create(ctx context.Context, d deps, author Author, p NewPost) (Post, error) {
	form := validate.Post{
		Title:       p.Title,
		Description: p.Description,
	}
	if len(p.Image) > 0 {
		form.Image = mimetype.Detect(p.Image).String()
	}
	if err := validate.Struct(form); err != nil {
		return Post{}, err
	}

	url, err := d.Media().Save(ctx, author.ID, "postPic", p.Image)
	if err != nil {
		return Post{}, err
	}
	post := Post{
		ID:           store.NewID(),
		UserID:       author.ID,
		Username:     author.Username,
		Title:        helpers.Text(p.Title),
		Description:  helpers.Text(p.Description),
		Image:        url,
		UserPhotoURL: author.ProfilePic,
		Created:      time.Now(),
	}
	if err := d.Store().C("posts").Insert(ctx, post); err != nil {
		if derr := d.Media().Delete(ctx, url); derr != nil {
			log.Warningf("Could not discard picture %s: %v", url, derr)
		}
		return Post{}, err
	}
	publish(ctx, d, events.POSTS_NEW, post.ID)
	return post, nil
}

// Delete removes a post of actorID with its likes and comments, then its
// picture. A failure deleting the picture is only logged.
func Delete(ctx context.Context, d deps, actorID, id string) error {
	release, err := Deleting.Acquire(id)
	if err != nil {
		return err
	}
	defer release()

	p, err := FindId(ctx, d, id)
	if err != nil {
		return err
	}
	if p.UserID != actorID {
		return ErrNotOwner
	}
	children := store.Where("postId", id)
	if _, err := d.Store().C("likes").RemoveAll(ctx, children); err != nil {
		return err
	}
	if _, err := d.Store().C("comments").RemoveAll(ctx, children); err != nil {
		return err
	}
	if err := d.Store().C("posts").RemoveId(ctx, id); err != nil {
		return err
	}
	if p.Image != "" {
		if err := d.Media().Delete(ctx, p.Image); err != nil {
			log.Warningf("Could not delete image of post %s: %v", id, err)
		}
	}
	publish(ctx, d, events.POSTS_DELETE, id)
	return nil
}

// Recount sets the counters of a post from its like and comment records.
// It tells whether they had drifted.
func Recount(ctx context.Context, d deps, id string) (Post, bool, error) {
	p, err := FindId(ctx, d, id)
	if err != nil {
		return p, false, err
	}
	children := store.Where("postId", id)
	likes, err := d.Store().C("likes").Count(ctx, children)
	if err != nil {
		return p, false, err
	}
	comments, err := d.Store().C("comments").Count(ctx, children)
	if err != nil {
		return p, false, err
	}
	if likes == p.LikesCount && comments == p.CommentsCount {
		return p, false, nil
	}
	log.Infof("Post %s counters drifted (likes %d -> %d, comments %d -> %d)", id, p.LikesCount, likes, p.CommentsCount, comments)
	err = d.Store().C("posts").Update(ctx, id, store.Update{Set: bson.M{
		"likesCount":    likes,
		"commentsCount": comments,
	}})
	if err != nil {
		return p, false, err
	}
	p.LikesCount, p.CommentsCount = likes, comments
	return p, true, nil
}

// RecountAll repairs every post and returns how many were fixed.
func RecountAll(ctx context.Context, d deps) (fixed int, err error) {
	var list Posts
	if err = d.Store().C("posts").Find(ctx, store.All(), &list); err != nil {
		return
	}
	for _, p := range list {
		_, changed, err := Recount(ctx, d, p.ID)
		if err == ErrPostNotFound {
			continue
		}
		if err != nil {
			return fixed, err
		}
		if changed {
			fixed++
		}
	}
	return
}

func publish(ctx context.Context, d deps, event, id string) {
	err := d.Broker().Publish(ctx, events.FeedChannel, events.Event{
		Name:   event,
		Params: map[string]interface{}{"id": id},
	})
	if err != nil {
		log.Errorf("Could not publish %s: %v", event, err)
	}
}
