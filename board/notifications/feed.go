package notifications

import (
	"context"

	"github.com/artworked/core/core/events"
)

// Watch streams snapshots of userID notifications: one right away and a
// fresh one after every change. The channel closes once ctx is done.
func Watch(ctx context.Context, deps Deps, userID string) (<-chan Snapshot, error) {
	sub, err := deps.Broker().Subscribe(ctx, events.NotificationsChannel(userID))
	if err != nil {
		return nil, err
	}
	first, err := Take(ctx, deps, userID)
	if err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan Snapshot, 1)
	out <- first
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, alive := <-sub.C:
				if !alive {
					return
				}
				snap, err := Take(ctx, deps, userID)
				if err != nil {
					if ctx.Err() == nil {
						log.Errorf("Could not refresh notifications of %s: %v", userID, err)
					}
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
