package comments

import (
	"time"
)

type Comment struct {
	ID           string    `bson:"_id" json:"commentId"`
	PostID       string    `bson:"postId" json:"postId"`
	UserID       string    `bson:"userId" json:"userId"`
	UserName     string    `bson:"userName" json:"userName"`
	UserPhotoURL string    `bson:"userPhotoUrl" json:"userPhotoUrl"`
	Content      string    `bson:"comment" json:"comment"`
	Created      time.Time `bson:"createdAt" json:"createdAt"`
}

type Comments []Comment

func (all Comments) Map() map[string]Comment {
	m := make(map[string]Comment, len(all))
	for _, item := range all {
		m[item.ID] = item
	}

	return m
}

// View of a post comments.
type View struct {
	Count int      `json:"commentsCount"`
	List  Comments `json:"comments"`
}
