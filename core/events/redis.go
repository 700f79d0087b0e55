package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// Redis broadcasts events through redis pub/sub so every API process sees
// changes made by the others.
type Redis struct {
	Client *redis.Client
}

// DialRedis connects to address and checks the connection.
func DialRedis(ctx context.Context, address string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: address})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{Client: client}, nil
}

func (r *Redis) Publish(ctx context.Context, channel string, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, channel, payload).Err()
}

func (r *Redis) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	pubsub := r.Client.Subscribe(ctx, channel)

	// Wait for the subscription confirmation before handing it out.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	ch := make(chan Event, BufferSize)
	done := make(chan struct{})
	sub := &Subscription{C: ch}
	sub.close = func() {
		close(done)
		pubsub.Close()
	}
	go func() {
		defer close(ch)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case <-done:
				return
			case m, alive := <-messages:
				if !alive {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(m.Payload), &e); err != nil {
					log.Errorf("Could not decode event from %s: %v", channel, err)
					continue
				}
				select {
				case ch <- e:
				default:
					log.Warningf("Dropping %s event for a slow subscriber of %s", e.Name, channel)
				}
			}
		}
	}()
	return sub, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
