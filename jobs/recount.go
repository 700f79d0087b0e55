package jobs

import (
	"context"
	"time"

	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/store"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("jobs")

type deps interface {
	Store() store.Store
	Broker() events.Broker
	Media() *media.Service
}

// Recount repairs post counters every interval until ctx is done.
func Recount(ctx context.Context, d deps, every time.Duration) {
	log.Infof("Recounting post counters every %s", every)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			RecountOnce(ctx, d)
		}
	}
}

// RecountOnce runs a single pass and logs its outcome.
func RecountOnce(ctx context.Context, d deps) int {
	starts := time.Now()
	fixed, err := post.RecountAll(ctx, d)
	if err != nil {
		log.Errorf("Recount failed after fixing %d posts: %v", fixed, err)
		return fixed
	}
	log.Infof("Recount fixed %d posts in %s", fixed, time.Since(starts))
	return fixed
}
