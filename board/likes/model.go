package likes

import (
	"errors"
	"time"
)

var (
	ErrLikeNotFound = errors.New("like has not been found by given criteria")
	ErrAlreadyLiked = errors.New("post is already liked")
)

type Like struct {
	ID      string    `bson:"_id" json:"likeId"`
	UserID  string    `bson:"userId" json:"userId"`
	PostID  string    `bson:"postId" json:"postId"`
	Created time.Time `bson:"createdAt" json:"createdAt"`
}

// ID of the like of userID on postID.
func ID(postID, userID string) string {
	return postID + "_" + userID
}

// State of a post as seen by one user.
type State struct {
	Liked bool `json:"hasUserLiked"`
	Count int  `json:"likesCount"`
}
