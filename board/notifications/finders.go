package notifications

import (
	"context"
	"errors"

	"github.com/artworked/core/core/store"
)

var ErrNotificationNotFound = errors.New("Notification has not been found by given criteria.")

func FindId(ctx context.Context, deps Deps, userID, id string) (notification Notification, err error) {
	err = deps.Store().C("notifications").FindId(ctx, id, &notification)
	if err == store.ErrNotFound || (err == nil && notification.ReceiverID != userID) {
		return Notification{}, ErrNotificationNotFound
	}
	return
}

// List the notifications of userID, newest first.
func List(ctx context.Context, deps Deps, userID string) (list Notifications, err error) {
	list = Notifications{}
	err = deps.Store().C("notifications").Find(ctx, store.Where("receiverId", userID).OrderBy("-createdAt"), &list)
	return
}

// Take a snapshot of userID notifications.
func Take(ctx context.Context, deps Deps, userID string) (Snapshot, error) {
	list, err := List(ctx, deps, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{List: list, Unread: list.Unread()}, nil
}
