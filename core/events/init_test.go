package events

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalBroker(t *testing.T) {
	Convey("Given a local broker with one subscriber", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		broker := NewLocal()
		sub, err := broker.Subscribe(ctx, NotificationsChannel("u1"))
		So(err, ShouldBeNil)

		Convey("events on the channel are delivered", func() {
			So(broker.Publish(ctx, NotificationsChannel("u1"), Event{Name: NOTIFICATIONS_CHANGE}), ShouldBeNil)
			select {
			case e := <-sub.C:
				So(e.Name, ShouldEqual, NOTIFICATIONS_CHANGE)
			case <-time.After(time.Second):
				t.Fatal("event was not delivered")
			}
		})

		Convey("events on other channels are not", func() {
			So(broker.Publish(ctx, NotificationsChannel("u2"), Event{Name: NOTIFICATIONS_CHANGE}), ShouldBeNil)
			select {
			case e := <-sub.C:
				t.Fatalf("unexpected event %v", e)
			case <-time.After(50 * time.Millisecond):
			}
		})

		Convey("closing the subscription closes its channel", func() {
			sub.Close()
			_, alive := <-sub.C
			So(alive, ShouldBeFalse)
			So(broker.Publish(ctx, NotificationsChannel("u1"), Event{Name: NOTIFICATIONS_CHANGE}), ShouldBeNil)
		})

		Convey("cancelling the context tears the subscription down", func() {
			cancel()
			select {
			case _, alive := <-sub.C:
				So(alive, ShouldBeFalse)
			case <-time.After(time.Second):
				t.Fatal("subscription was not closed")
			}
		})
	})
}
