package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/artworked/core/board/notifications"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/user"
	. "github.com/smartystreets/goconvey/convey"
)

type testDeps struct {
	store    store.Store
	broker   events.Broker
	sessions *user.Sessions
}

func (d testDeps) Store() store.Store       { return d.store }
func (d testDeps) Broker() events.Broker    { return d.broker }
func (d testDeps) Mailer() mail.Mailer      { return nil }
func (d testDeps) Sessions() *user.Sessions { return d.sessions }

type socket chan string

func (s socket) Write(data string) {
	s <- data
}

func (s socket) next(t *testing.T) socketEvent {
	select {
	case data := <-s:
		var e socketEvent
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			t.Fatal(err)
		}
		return e
	case <-time.After(time.Second):
		t.Fatal("nothing written to the socket")
	}
	return socketEvent{}
}

func TestClient(t *testing.T) {
	Convey("Given a connected client", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		d := testDeps{store.NewMemory(), events.NewLocal(), user.NewSessions("secret")}
		So(d.store.C("users").Insert(ctx, user.User{ID: "u1", Username: "ana"}), ShouldBeNil)
		raw := make(socket, 16)
		client := newClient(d, raw)

		Convey("a bad token is refused", func() {
			client.handle(ctx, socketEvent{Event: "auth", Params: map[string]interface{}{"token": "nope"}})
			So(raw.next(t).Event, ShouldEqual, "auth:error")
			So(client.UserID, ShouldBeEmpty)
		})

		Convey("reading before authenticating is refused", func() {
			client.handle(ctx, socketEvent{Event: "notifications:read"})
			So(raw.next(t).Event, ShouldEqual, "auth:error")
		})

		Convey("once authenticated it receives notification snapshots", func() {
			token, err := d.sessions.Issue("u1")
			So(err, ShouldBeNil)
			client.handle(ctx, socketEvent{Event: "auth", Params: map[string]interface{}{"token": token}})

			my := raw.next(t)
			So(my.Event, ShouldEqual, "auth:my")
			So(my.Params["user"].(map[string]interface{})["profilePic"], ShouldEqual, user.DefaultProfilePic)

			first := raw.next(t)
			So(first.Event, ShouldEqual, "notifications")
			So(first.Params["unread"], ShouldEqual, float64(0))

			_, err = notifications.Notify(ctx, d, "u1", notifications.LIKE, "p1", notifications.Actor{ID: "bea", Username: "bea"})
			So(err, ShouldBeNil)
			changed := raw.next(t)
			So(changed.Params["unread"], ShouldEqual, float64(1))
			So(changed.Params["list"], ShouldHaveLength, 1)

			client.handle(ctx, socketEvent{Event: "notifications:read"})
			So(raw.next(t).Params["unread"], ShouldEqual, float64(0))

			Convey("and stops after cleaning the session", func() {
				client.handle(ctx, socketEvent{Event: "auth:clean"})
				So(raw.next(t).Event, ShouldEqual, "auth:cleaned")
				So(client.UserID, ShouldBeEmpty)

				_, err = notifications.Notify(ctx, d, "u1", notifications.COMMENT, "p1", notifications.Actor{ID: "bea"})
				So(err, ShouldBeNil)
				select {
				case data := <-raw:
					t.Fatalf("unexpected write %s", data)
				case <-time.After(50 * time.Millisecond):
				}
			})
		})
	})
}

func TestBroadcast(t *testing.T) {
	Convey("Given a server with two sockets", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		d := testDeps{store.NewMemory(), events.NewLocal(), user.NewSessions("secret")}
		s := New(d, true)
		a, b := make(socket, 4), make(socket, 4)
		s.sockets.Store("a", newClient(d, a))
		s.sockets.Store("b", newClient(d, b))
		So(s.Run(ctx), ShouldBeNil)

		Convey("feed events reach both", func() {
			err := d.broker.Publish(ctx, events.FeedChannel, events.Event{
				Name:   events.POSTS_NEW,
				Params: map[string]interface{}{"id": "p1"},
			})
			So(err, ShouldBeNil)
			for _, raw := range []socket{a, b} {
				e := raw.next(t)
				So(e.Event, ShouldEqual, events.POSTS_NEW)
				So(e.Params["id"], ShouldEqual, "p1")
			}
		})
	})
}
