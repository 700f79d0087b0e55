package comments

import (
	"context"
	"errors"

	"github.com/artworked/core/core/store"
)

var ErrCommentNotFound = errors.New("Comment has not been found by given criteria.")

func FindId(ctx context.Context, deps Deps, id string) (comment Comment, err error) {
	err = deps.Store().C("comments").FindId(ctx, id, &comment)
	if err == store.ErrNotFound {
		err = ErrCommentNotFound
	}
	return
}

// List the comments of postID, newest first.
func List(ctx context.Context, deps Deps, postID string) (list Comments, err error) {
	list = Comments{}
	err = deps.Store().C("comments").Find(ctx, store.Where("postId", postID).OrderBy("-createdAt"), &list)
	return
}
