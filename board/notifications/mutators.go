package notifications

import (
	"context"
	"time"

	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/store"
)

// Notify stores a notification for receiverID. Like notifications replace
// the previous one of the same actor and post; comment notifications are
// always new.
func Notify(ctx context.Context, deps Deps, receiverID, kind, postID string, actor Actor) (Notification, error) {
	n := Notification{
		ReceiverID:          receiverID,
		Type:                kind,
		PostID:              postID,
		TriggeredBy:         actor.ID,
		TriggeredByUsername: actor.Username,
		Read:                false,
		Created:             time.Now(),
	}
	if n.TriggeredByUsername == "" {
		n.TriggeredByUsername = DefaultUsername
	}
	if actor.ProfilePic != "" {
		pic := actor.ProfilePic
		n.TriggeredByProfilePicture = &pic
	}

	var err error
	c := deps.Store().C("notifications")
	switch kind {
	case LIKE:
		n.ID = LikeID(postID, actor.ID)
		err = c.Put(ctx, n.ID, n)
	default:
		n.ID = CommentID(postID, actor.ID)
		err = c.Insert(ctx, n)
	}
	if err != nil {
		return n, err
	}
	changed(ctx, deps, receiverID)
	return n, nil
}

// MarkRead flips a single notification of userID.
func MarkRead(ctx context.Context, deps Deps, userID, id string) error {
	n, err := FindId(ctx, deps, userID, id)
	if err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	if err := deps.Store().C("notifications").Update(ctx, id, store.Set("read", true)); err != nil {
		return err
	}
	changed(ctx, deps, userID)
	return nil
}

// MarkAllRead flips every unread notification of userID and returns how many
// changed.
func MarkAllRead(ctx context.Context, deps Deps, userID string) (int, error) {
	q := store.Where("receiverId", userID).And("read", false)
	n, err := deps.Store().C("notifications").UpdateAll(ctx, q, store.Set("read", true))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		changed(ctx, deps, userID)
	}
	return n, nil
}

func changed(ctx context.Context, deps Deps, userID string) {
	err := deps.Broker().Publish(ctx, events.NotificationsChannel(userID), events.Event{Name: events.NOTIFICATIONS_CHANGE})
	if err != nil {
		log.Errorf("Could not publish notifications change for %s: %v", userID, err)
	}
}
