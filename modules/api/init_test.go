package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artworked/core/core/config"
	chttp "github.com/artworked/core/core/http"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	router *gin.Engine
	token  string
}

type response struct {
	Code int
	Body map[string]interface{}
	List []interface{}
}

func (c client) do(method, path string, body io.Reader, contentType string, header map[string]string) response {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	res := response{Code: w.Code}
	raw := w.Body.Bytes()
	if bytes.HasPrefix(raw, []byte("[")) {
		json.Unmarshal(raw, &res.List)
	} else {
		json.Unmarshal(raw, &res.Body)
	}
	return res
}

func (c client) json(method, path string, payload interface{}, header map[string]string) response {
	var body io.Reader
	if payload != nil {
		encoded, _ := json.Marshal(payload)
		body = bytes.NewReader(encoded)
	}
	return c.do(method, path, body, "application/json", header)
}

func (c client) multipart(method, path string, fields map[string]string, file string, data []byte) response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if file != "" {
		part, _ := w.CreateFormFile(file, "picture")
		part.Write(data)
	}
	w.Close()
	return c.do(method, path, &buf, w.FormDataContentType(), nil)
}

func pngPicture(width, height int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func boot(t *testing.T) *gin.Engine {
	c, err := config.Parse(`{"application": {"secret": "secret", "route_secret": "route"}, "log": {"level": "ERROR"}}`)
	if err != nil {
		t.Fatal(err)
	}
	d, err := deps.Bootstrap(c)
	if err != nil {
		t.Fatal(err)
	}
	return New(d).Router()
}

func signup(r *gin.Engine, username string) (client, response) {
	anon := client{router: r}
	res := anon.json("POST", "/v1/auth/signup", gin.H{
		"username":        username,
		"email":           username + "@artworked.app",
		"password":        "Secret1!",
		"confirmPassword": "Secret1!",
	}, nil)
	token, _ := res.Body["token"].(string)
	return client{router: r, token: token}, res
}

func TestAccounts(t *testing.T) {
	Convey("Given the api", t, func() {
		r := boot(t)
		anon := client{router: r}

		Convey("signing up returns a session and the profile route", func() {
			ana, res := signup(r, "ana")
			So(res.Code, ShouldEqual, 201)
			So(ana.token, ShouldNotBeEmpty)
			So(res.Body["route"], ShouldStartWith, "/userprofile/")

			me := ana.json("GET", "/v1/me", nil, nil)
			So(me.Code, ShouldEqual, 200)
			profile := me.Body["user"].(map[string]interface{})
			So(profile["username"], ShouldEqual, "ana")
			So(profile["profilePic"], ShouldNotBeEmpty)
			So(me.Body["email"], ShouldEqual, "ana@artworked.app")

			encrypted := strings.TrimPrefix(res.Body["route"].(string), "/userprofile/")
			public := anon.json("GET", "/v1/users/"+encrypted, nil, nil)
			So(public.Code, ShouldEqual, 200)
			So(public.Body["user"].(map[string]interface{})["username"], ShouldEqual, "ana")

			Convey("the same username cannot sign up twice", func() {
				_, res := signup(r, "ANA")
				So(res.Code, ShouldEqual, 409)
				So(res.Body["message"], ShouldEqual, "This username is already in use. Please try a different one.")
			})

			Convey("logging in checks the password", func() {
				res := anon.json("POST", "/v1/auth/login", gin.H{"email": "ana@artworked.app", "password": "Secret1!"}, nil)
				So(res.Code, ShouldEqual, 200)
				So(res.Body["token"], ShouldNotBeEmpty)

				res = anon.json("POST", "/v1/auth/login", gin.H{"email": "ana@artworked.app", "password": "Secret2!"}, nil)
				So(res.Code, ShouldEqual, 401)
				So(res.Body["message"], ShouldEqual, "Invalid email or password")
			})

			Convey("the profile can be edited with a new picture", func() {
				res := ana.multipart("PUT", "/v1/me", map[string]string{"username": "ana.b", "bio": "painter"}, "profilePic", pngPicture(800, 600))
				So(res.Code, ShouldEqual, 200)
				profile := res.Body["user"].(map[string]interface{})
				So(profile["username"], ShouldEqual, "ana.b")
				So(profile["profilePic"], ShouldStartWith, "http://localhost:3200/media/profile/")

				res = ana.multipart("PUT", "/v1/me", map[string]string{"username": ""}, "", nil)
				So(res.Code, ShouldEqual, 400)
				So(res.Body["details"].(map[string]interface{})["username"], ShouldEqual, "Enter a username")
			})

			Convey("a taken username stores no picture", func() {
				bea, _ := signup(r, "bea")
				storage := deps.Container.Media().Storage.(*media.Memory)
				before := storage.Len()

				res := bea.multipart("PUT", "/v1/me", map[string]string{"username": "<i>Ana</i>"}, "profilePic", pngPicture(40, 40))
				So(res.Code, ShouldEqual, 409)
				So(storage.Len(), ShouldEqual, before)
			})

			Convey("users can be searched by prefix", func() {
				res := anon.json("GET", "/v1/users/search?q=An", nil, nil)
				So(res.Code, ShouldEqual, 200)
				So(res.List, ShouldHaveLength, 1)
			})
		})

		Convey("invalid forms list every failing field", func() {
			res := anon.json("POST", "/v1/auth/signup", gin.H{
				"username":        "",
				"email":           "nope",
				"password":        "short",
				"confirmPassword": "other",
			}, nil)
			So(res.Code, ShouldEqual, 400)
			So(res.Body["message"], ShouldEqual, "Invalid form")
			details := res.Body["details"].(map[string]interface{})
			So(details["username"], ShouldEqual, "Username is required")
			So(details["email"], ShouldEqual, "Invalid email")
			So(details["password"], ShouldEqual, "Password must be at least 6 characters")
			So(details["confirmPassword"], ShouldEqual, "Passwords must match")
		})

		Convey("private routes need a session", func() {
			res := anon.json("GET", "/v1/me", nil, nil)
			So(res.Code, ShouldEqual, 401)
			So(res.Body["message"], ShouldEqual, "Auth method required")
		})

		Convey("unknown routes answer json", func() {
			res := anon.json("GET", "/v1/nothing/here", nil, nil)
			So(res.Code, ShouldEqual, 404)
			So(res.Body["status"], ShouldEqual, "error")
		})
	})
}

func TestBoard(t *testing.T) {
	Convey("Given an author and a reader", t, func() {
		r := boot(t)
		ana, _ := signup(r, "ana")
		bea, _ := signup(r, "bea")

		res := ana.multipart("POST", "/v1/posts", map[string]string{"title": "Dawn", "description": "oil"}, "image", pngPicture(8, 8))
		So(res.Code, ShouldEqual, 201)
		p := res.Body["post"].(map[string]interface{})
		id := p["id"].(string)
		So(p["likesCount"], ShouldEqual, float64(0))
		So(p["commentsCount"], ShouldEqual, float64(0))

		Convey("the feed lists it", func() {
			feed := bea.json("GET", "/v1/feed", nil, nil)
			So(feed.Code, ShouldEqual, 200)
			So(feed.List, ShouldHaveLength, 1)
		})

		Convey("pictures other than images are refused", func() {
			res := ana.multipart("POST", "/v1/posts", map[string]string{"title": "Notes"}, "image", []byte("plain text"))
			So(res.Code, ShouldEqual, 400)
			So(res.Body["details"].(map[string]interface{})["image"], ShouldEqual, "Unsupported file format")
		})

		Convey("likes and comments notify the author", func() {
			like := bea.json("POST", "/v1/posts/"+id+"/like", nil, nil)
			So(like.Code, ShouldEqual, 200)
			So(like.Body["hasUserLiked"], ShouldBeTrue)
			So(like.Body["likesCount"], ShouldEqual, float64(1))
			So(bea.json("POST", "/v1/posts/"+id+"/like", nil, nil).Code, ShouldEqual, 409)

			comment := bea.json("POST", "/v1/posts/"+id+"/comments", gin.H{"comment": "lovely"}, nil)
			So(comment.Code, ShouldEqual, 201)
			So(comment.Body["commentsCount"], ShouldEqual, float64(1))
			So(comment.Body["comments"], ShouldHaveLength, 1)

			blank := bea.json("POST", "/v1/posts/"+id+"/comments", gin.H{"comment": "  "}, nil)
			So(blank.Code, ShouldEqual, 400)
			So(blank.Body["details"].(map[string]interface{})["comment"], ShouldEqual, "Comment is required")

			got := bea.json("GET", "/v1/posts/"+id, nil, nil)
			So(got.Body["hasUserLiked"], ShouldBeTrue)
			So(got.Body["post"].(map[string]interface{})["commentsCount"], ShouldEqual, float64(1))

			inbox := ana.json("GET", "/v1/notifications", nil, nil)
			So(inbox.Code, ShouldEqual, 200)
			So(inbox.Body["unread"], ShouldEqual, float64(2))
			So(inbox.Body["list"], ShouldHaveLength, 2)

			read := ana.json("PUT", "/v1/notifications/read", nil, nil)
			So(read.Body["updated"], ShouldEqual, float64(2))
			So(ana.json("GET", "/v1/notifications", nil, nil).Body["unread"], ShouldEqual, float64(0))

			unlike := bea.json("DELETE", "/v1/posts/"+id+"/like", nil, nil)
			So(unlike.Code, ShouldEqual, 200)
			So(unlike.Body["hasUserLiked"], ShouldBeFalse)
			So(unlike.Body["likesCount"], ShouldEqual, float64(0))

			Convey("comments are deleted by their author after confirming", func() {
				commentID := comment.Body["comments"].([]interface{})[0].(map[string]interface{})["commentId"].(string)
				path := "/v1/posts/" + id + "/comments/" + commentID
				So(bea.json("DELETE", path, nil, nil).Code, ShouldEqual, 428)

				pending := bea.json("POST", "/v1/confirmations", gin.H{"kind": "delete:comment", "targetId": commentID}, nil)
				So(pending.Code, ShouldEqual, 201)
				So(pending.Body["message"], ShouldEqual, "Are you sure you want to delete this comment? This action cannot be undone.")

				deleted := bea.json("DELETE", path, nil, map[string]string{chttp.ConfirmHeader: pending.Body["token"].(string)})
				So(deleted.Code, ShouldEqual, 200)
				So(deleted.Body["commentsCount"], ShouldEqual, float64(0))
			})
		})

		Convey("only the author deletes the post, once confirmed", func() {
			path := "/v1/posts/" + id
			So(ana.json("DELETE", path, nil, nil).Code, ShouldEqual, 428)

			pending := bea.json("POST", "/v1/confirmations", gin.H{"kind": "delete:post", "targetId": id}, nil)
			res := bea.json("DELETE", path, nil, map[string]string{chttp.ConfirmHeader: pending.Body["token"].(string)})
			So(res.Code, ShouldEqual, 403)

			pending = bea.json("POST", "/v1/confirmations", gin.H{"kind": "delete:post", "targetId": id}, nil)
			res = ana.json("DELETE", path, nil, map[string]string{chttp.ConfirmHeader: pending.Body["token"].(string)})
			So(res.Code, ShouldEqual, 428)

			pending = ana.json("POST", "/v1/confirmations", gin.H{"kind": "delete:post", "targetId": id}, nil)
			So(pending.Body["message"], ShouldEqual, "Are you sure you want to delete this post? This action cannot be undone.")
			res = ana.json("DELETE", path, nil, map[string]string{chttp.ConfirmHeader: pending.Body["token"].(string)})
			So(res.Code, ShouldEqual, 200)

			gone := ana.json("GET", path, nil, nil)
			So(gone.Code, ShouldEqual, 404)
			So(gone.Body["message"], ShouldEqual, "Post unavailable")
		})
	})
}

func TestUploads(t *testing.T) {
	Convey("Given a signed upload", t, func() {
		r := boot(t)
		ana, _ := signup(r, "ana")
		me := ana.json("GET", "/v1/me", nil, nil)
		uid := me.Body["user"].(map[string]interface{})["id"].(string)

		sig := ana.json("POST", "/generate-signature", gin.H{"userId": uid, "type": "bannerPic"}, nil)
		So(sig.Code, ShouldEqual, 200)
		publicID := sig.Body["public_id"].(string)
		So(publicID, ShouldStartWith, "banner/"+uid+"_")

		fields := map[string]string{
			"userId":        uid,
			"signature":     sig.Body["signature"].(string),
			"timestamp":     jsonNumber(sig.Body["timestamp"]),
			"upload_preset": sig.Body["upload_preset"].(string),
			"public_id":     publicID,
		}

		Convey("the picture is stored under its public id", func() {
			res := ana.multipart("POST", "/upload-picture", fields, "file", pngPicture(4, 4))
			So(res.Code, ShouldEqual, 200)
			So(res.Body["url"], ShouldEqual, "http://localhost:3200/media/"+publicID+".png")

			So(ana.json("POST", "/delete-image", gin.H{"publicId": publicID}, nil).Code, ShouldEqual, 200)
			So(ana.json("POST", "/delete-image", gin.H{"publicId": "banner/someone_1"}, nil).Code, ShouldEqual, 403)
		})

		Convey("a tampered public id is refused", func() {
			fields["public_id"] = "banner/other_1"
			res := ana.multipart("POST", "/upload-picture", fields, "file", pngPicture(4, 4))
			So(res.Code, ShouldEqual, 403)
		})

		Convey("unknown upload types are refused", func() {
			res := ana.json("POST", "/generate-signature", gin.H{"userId": uid, "type": "avatar"}, nil)
			So(res.Code, ShouldEqual, 400)
		})
	})
}

func jsonNumber(v interface{}) string {
	n, _ := json.Marshal(v)
	return string(n)
}
