package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given an almost empty document", t, func() {
		c, err := Parse(`{"application": {"secret": "s3cret"}, "jobs": {"recount_minutes": 15}}`)
		So(err, ShouldBeNil)
		runtime := c.Copy()

		Convey("explicit keys are kept", func() {
			So(runtime.Secret, ShouldEqual, "s3cret")
			So(runtime.Recount, ShouldEqual, 15)
		})

		Convey("defaults fill the rest", func() {
			So(runtime.Development(), ShouldBeTrue)
			So(runtime.Store.Driver, ShouldEqual, "memory")
			So(runtime.Broker.Driver, ShouldEqual, "local")
			So(runtime.Media.Driver, ShouldEqual, "memory")
			So(runtime.Media.UploadPreset, ShouldEqual, "artworked")
			So(runtime.Mail.Port, ShouldEqual, 587)
		})
	})

	Convey("Broken documents are rejected", t, func() {
		_, err := Parse(`{"application":`)
		So(err, ShouldNotBeNil)
	})
}

func TestBootstrap(t *testing.T) {
	Convey("Given a config file", t, func() {
		file := filepath.Join(t.TempDir(), "config.json")
		doc := `{"environment": "production", "mongo": {"url": "mongodb://file"}, "store": {"driver": "mongo"}}`
		So(os.WriteFile(file, []byte(doc), 0644), ShouldBeNil)
		t.Setenv("MONGO_URL", "mongodb://env")

		c, err := Bootstrap(file)
		So(err, ShouldBeNil)

		Convey("environment variables override file keys", func() {
			runtime := c.Copy()
			So(runtime.Development(), ShouldBeFalse)
			So(runtime.Store.Driver, ShouldEqual, "mongo")
			So(runtime.Store.MongoURL, ShouldEqual, "mongodb://env")
		})

		Convey("merging again picks up changes and signals a reload", func() {
			<-c.Reload
			So(os.WriteFile(file, []byte(`{"environment": "development"}`), 0644), ShouldBeNil)
			So(c.Merge(), ShouldBeNil)
			So(c.Copy().Development(), ShouldBeTrue)
			So(<-c.Reload, ShouldBeTrue)
		})
	})

	Convey("A missing file runs with defaults", t, func() {
		c, err := Bootstrap(filepath.Join(t.TempDir(), "missing.json"))
		So(err, ShouldBeNil)
		So(c.Copy().Store.Driver, ShouldEqual, "memory")
	})
}
