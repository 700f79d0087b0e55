package deps

import (
	"context"
	"time"

	"github.com/artworked/core/core/events"
)

// IgniteBroker sets up the events broker named by broker.driver.
func IgniteBroker(container Deps) (Deps, error) {
	runtime := container.Config().Copy()
	switch runtime.Broker.Driver {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redis, err := events.DialRedis(ctx, runtime.Broker.Redis)
		if err != nil {
			return container, err
		}
		container.BrokerProvider = redis
	default:
		container.BrokerProvider = events.NewLocal()
	}
	return container, nil
}
