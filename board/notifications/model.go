package notifications

import (
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Notification kinds.
const (
	LIKE    = "like"
	COMMENT = "comment"
)

// DefaultUsername names actors without a username.
const DefaultUsername = "Artworked User"

type Notification struct {
	ID                        string    `bson:"_id" json:"id"`
	ReceiverID                string    `bson:"receiverId" json:"receiverId"`
	Type                      string    `bson:"type" json:"type"`
	PostID                    string    `bson:"postId" json:"postId"`
	TriggeredBy               string    `bson:"triggeredBy" json:"triggeredBy"`
	TriggeredByUsername       string    `bson:"triggeredByUsername" json:"triggeredByUsername"`
	TriggeredByProfilePicture *string   `bson:"triggeredByProfilePicture" json:"triggeredByProfilePicture"`
	Read                      bool      `bson:"read" json:"read"`
	Created                   time.Time `bson:"createdAt" json:"createdAt"`
}

// Message shown for the notification.
func (n Notification) Message() string {
	switch n.Type {
	case LIKE:
		return "liked your post!"
	case COMMENT:
		return "commented to your post!"
	}
	return ""
}

type Notifications []Notification

// Unread counts the notifications not read yet.
func (all Notifications) Unread() (n int) {
	for _, item := range all {
		if !item.Read {
			n++
		}
	}
	return
}

// Humanize lists the notifications the way the panel renders them.
func (all Notifications) Humanize() []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(all))
	for _, n := range all {
		list = append(list, map[string]interface{}{
			"id":        n.ID,
			"target":    "/post/" + n.PostID,
			"title":     n.TriggeredByUsername + " " + n.Message(),
			"picture":   n.TriggeredByProfilePicture,
			"read":      n.Read,
			"createdAt": n.Created,
		})
	}
	return list
}

// Actor triggering a notification.
type Actor struct {
	ID         string
	Username   string
	ProfilePic string
}

// LikeID is stable per post and actor so repeated likes overwrite.
func LikeID(postID, actorID string) string {
	return postID + "_" + actorID + "_" + LIKE
}

// CommentID is unique per comment.
func CommentID(postID, actorID string) string {
	suffix := strings.Replace(uuid.NewV4().String(), "-", "", -1)[:8]
	return postID + "_" + actorID + "_" + COMMENT + "_" + suffix
}

// Snapshot of a user's notifications.
type Snapshot struct {
	List   Notifications `json:"list"`
	Unread int           `json:"unread"`
}
