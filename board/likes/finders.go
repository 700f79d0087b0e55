package likes

import (
	"context"

	"github.com/artworked/core/core/store"
)

// FindByUser gets the like of userID on postID.
func FindByUser(ctx context.Context, deps Deps, postID, userID string) (like Like, err error) {
	var list []Like
	q := store.Where("postId", postID).And("userId", userID).Take(1)
	if err = deps.Store().C("likes").Find(ctx, q, &list); err != nil {
		return
	}
	if len(list) == 0 {
		return like, ErrLikeNotFound
	}
	return list[0], nil
}

// Count the like records of postID.
func Count(ctx context.Context, deps Deps, postID string) (int, error) {
	return deps.Store().C("likes").Count(ctx, store.Where("postId", postID))
}
