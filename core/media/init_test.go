package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func picture(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestSigner(t *testing.T) {
	Convey("Given a signer", t, func() {
		s := NewSigner("api-secret", "artworked")
		now := time.Unix(1735899431, 0)
		s.now = func() time.Time { return now }

		sig, err := s.Sign("u1", "postPic")
		So(err, ShouldBeNil)
		So(sig.PublicID, ShouldEqual, "posts/u1_1735899431")
		So(sig.UploadPreset, ShouldEqual, "artworked")
		So(sig.Timestamp, ShouldEqual, int64(1735899431))
		So(sig.Signature, ShouldHaveLength, 40)

		Convey("its own signatures verify", func() {
			So(s.Verify("u1", sig), ShouldBeNil)
		})

		Convey("a tampered public id is rejected", func() {
			sig.PublicID = "posts/u2_1735899431"
			So(s.Verify("u2", sig), ShouldEqual, ErrInvalidSignature)
		})

		Convey("another user cannot reuse the signature", func() {
			So(s.Verify("u2", sig), ShouldEqual, ErrInvalidSignature)
		})

		Convey("old signatures expire", func() {
			now = now.Add(time.Hour + time.Second)
			So(s.Verify("u1", sig), ShouldEqual, ErrSignatureExpired)
		})

		Convey("unknown upload types are refused", func() {
			_, err := s.Sign("u1", "avatar")
			So(err, ShouldEqual, ErrUnknownType)
		})
	})
}

func TestService(t *testing.T) {
	Convey("Given an upload service on memory storage", t, func() {
		ctx := context.Background()
		storage := NewMemory("http://localhost:3200/media")
		svc := NewService(NewSigner("api-secret", "artworked"), storage)

		Convey("a png post picture is stored under its public id", func() {
			url, err := svc.Save(ctx, "u1", "postPic", picture(20, 10))
			So(err, ShouldBeNil)
			So(url, ShouldStartWith, "http://localhost:3200/media/posts/u1_")
			So(url, ShouldEndWith, ".png")

			id := svc.PublicID(url)
			obj, exists := storage.Get(id + ".png")
			So(exists, ShouldBeTrue)
			So(obj.ContentType, ShouldEqual, "image/png")

			So(svc.Delete(ctx, url), ShouldBeNil)
			So(storage.Len(), ShouldEqual, 0)
		})

		Convey("profile pictures are scaled to fit 400x400", func() {
			url, err := svc.Save(ctx, "u1", "profilePic", picture(800, 600))
			So(err, ShouldBeNil)
			obj, _ := storage.Get(svc.PublicID(url) + ".png")
			cfg, _, err := image.DecodeConfig(bytes.NewReader(obj.Data))
			So(err, ShouldBeNil)
			So(cfg.Width, ShouldEqual, 400)
			So(cfg.Height, ShouldEqual, 300)
		})

		Convey("non images are rejected", func() {
			_, err := svc.Save(ctx, "u1", "postPic", []byte("%PDF-1.4 definitely not a picture"))
			So(err, ShouldEqual, ErrUnsupportedFormat)
			So(storage.Len(), ShouldEqual, 0)
		})

		Convey("public ids drop the host, version and extension", func() {
			So(svc.PublicID("http://localhost:3200/media/v1735899431/posts/u1_1.jpg"), ShouldEqual, "posts/u1_1")
			So(svc.PublicID("http://localhost:3200/media/banner/u1_2.png"), ShouldEqual, "banner/u1_2")
			So(svc.PublicID("https://res.cloudinary.com/x/image/upload/v1/blank.png"), ShouldBeEmpty)
			So(svc.Delete(ctx, "https://res.cloudinary.com/x/image/upload/v1/blank.png"), ShouldEqual, ErrForeignObject)
		})
	})
}
