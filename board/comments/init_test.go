package comments

import (
	"context"
	"testing"
	"time"

	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/user"
	"github.com/artworked/core/core/validate"
	. "github.com/smartystreets/goconvey/convey"
)

type testDeps struct {
	store  store.Store
	broker events.Broker
	mailer *mail.Discard
}

func (d testDeps) Store() store.Store    { return d.store }
func (d testDeps) Broker() events.Broker { return d.broker }
func (d testDeps) Mailer() mail.Mailer   { return d.mailer }
func (d testDeps) Media() *media.Service { return nil }

func TestComments(t *testing.T) {
	Convey("Given a post with an author", t, func() {
		ctx := context.Background()
		d := testDeps{store.NewMemory(), events.NewLocal(), mail.NewDiscard("no-reply@artworked.app")}
		So(d.store.C("users").Insert(ctx, user.User{ID: "owner", Username: "owner", Email: "owner@artworked.app"}), ShouldBeNil)
		So(d.store.C("posts").Insert(ctx, post.Post{ID: "p1", UserID: "owner", Title: "Dusk", Created: time.Now()}), ShouldBeNil)
		ana := notifications.Actor{ID: "ana", Username: "ana", ProfilePic: "http://pics/ana.png"}
		thread := NewThread(d, "p1", ana)
		_, err := thread.Load(ctx)
		So(err, ShouldBeNil)

		Convey("adding bumps the counters and returns the fresh list", func() {
			view, err := thread.Add(ctx, "What a palette")
			So(err, ShouldBeNil)
			So(view.Count, ShouldEqual, 1)
			So(view.List, ShouldHaveLength, 1)
			So(view.List[0].UserName, ShouldEqual, "ana")

			p, _ := post.FindId(ctx, d, "p1")
			So(p.CommentsCount, ShouldEqual, 1)
		})

		Convey("every comment notifies and mails the author", func() {
			thread.Add(ctx, "one")
			thread.Add(ctx, "two")
			list, _ := notifications.List(ctx, d, "owner")
			So(list, ShouldHaveLength, 2)
			So(list[0].ID, ShouldNotEqual, list[1].ID)
			So(d.mailer.Sent(), ShouldHaveLength, 2)
			So(d.mailer.Sent()[0].GetHeader("To"), ShouldResemble, []string{"owner@artworked.app"})
		})

		Convey("blank comments are rejected before any write", func() {
			_, err := thread.Add(ctx, "  ")
			So(err, ShouldResemble, validate.Errors{"comment": "Comment is required"})
			_, err = Add(ctx, d, "p1", ana, validate.Comment{Comment: "<b></b>"})
			So(err, ShouldResemble, validate.Errors{"comment": "Comment is required"})
			n, _ := d.store.C("comments").Count(ctx, store.All())
			So(n, ShouldEqual, 0)
		})

		Convey("only the author deletes a comment", func() {
			c, err := Add(ctx, d, "p1", ana, validate.Comment{Comment: "mine"})
			So(err, ShouldBeNil)

			So(Delete(ctx, d, "bea", c.ID), ShouldEqual, ErrNotOwner)

			view, err := thread.Delete(ctx, c.ID)
			So(err, ShouldBeNil)
			So(view.List, ShouldBeEmpty)
			p, _ := post.FindId(ctx, d, "p1")
			So(p.CommentsCount, ShouldEqual, 0)

			So(Delete(ctx, d, "ana", c.ID), ShouldEqual, ErrCommentNotFound)
		})

		Convey("comments on missing posts fail", func() {
			_, err := Add(ctx, d, "nope", ana, validate.Comment{Comment: "hello"})
			So(err, ShouldEqual, post.ErrPostNotFound)
		})
	})
}
