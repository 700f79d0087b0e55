package post

import (
	"time"
)

type Post struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Username      string    `bson:"username" json:"username"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Image         string    `bson:"imagepost" json:"imagepost"`
	UserPhotoURL  string    `bson:"userPhotoUrl" json:"userPhotoUrl"`
	LikesCount    int       `bson:"likesCount" json:"likesCount"`
	CommentsCount int       `bson:"commentsCount" json:"commentsCount"`
	Created       time.Time `bson:"createdAt" json:"createdAt"`
}

// Posts list.
type Posts []Post

func (list Posts) IDs() []string {
	m := make([]string, len(list))
	for k, item := range list {
		m[k] = item.ID
	}
	return m
}

func (list Posts) Map() map[string]Post {
	m := make(map[string]Post, len(list))
	for _, item := range list {
		m[item.ID] = item
	}

	return m
}

// NewPost is a post submission. Image holds the raw picture.
type NewPost struct {
	Title       string
	Description string
	Image       []byte
}

// Author of a new post.
type Author struct {
	ID         string
	Username   string
	ProfilePic string
}
