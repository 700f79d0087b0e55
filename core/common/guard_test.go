package common

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGuard(t *testing.T) {
	Convey("A key can only be held once at a time", t, func() {
		g := NewGuard()
		release, err := g.Acquire("post:1")
		So(err, ShouldBeNil)

		_, err = g.Acquire("post:1")
		So(err, ShouldEqual, ErrDeleteInProgress)

		other, err := g.Acquire("post:2")
		So(err, ShouldBeNil)
		other()

		release()
		release()
		again, err := g.Acquire("post:1")
		So(err, ShouldBeNil)
		again()
	})
}
