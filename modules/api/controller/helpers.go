package controller

import (
	"io"
	"net/http"

	"github.com/artworked/core/board/comments"
	"github.com/artworked/core/board/likes"
	"github.com/artworked/core/board/notifications"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/common"
	"github.com/artworked/core/core/confirm"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/routeid"
	"github.com/artworked/core/core/user"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("api")

// MaxPictureSize is the largest accepted picture upload.
var MaxPictureSize int64 = 10 << 20

func jsonErr(c *gin.Context, status int, message string) {
	// This specific json error structure is handled
	// by the frontend in a generic way so errors
	// can be shown to the user.
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

func jsonFormErr(c *gin.Context, errs validate.Errors) {
	c.AbortWithStatusJSON(400, gin.H{
		"status":  "error",
		"message": "Invalid form",
		"details": errs,
	})
}

var statuses = map[error]int{
	post.ErrPostNotFound:                  404,
	comments.ErrCommentNotFound:           404,
	notifications.ErrNotificationNotFound: 404,
	likes.ErrLikeNotFound:                 404,
	user.ErrUserNotFound:                  404,
	routeid.ErrInvalidRoute:               404,
	likes.ErrAlreadyLiked:                 409,
	common.ErrDeleteInProgress:            409,
	user.ErrUsernameTaken:                 409,
	user.ErrEmailTaken:                    409,
	user.ErrInvalidCredentials:            401,
	user.ErrCurrentPasswordRequired:       400,
	user.ErrWrongPassword:                 403,
	confirm.ErrUnknownAction:              428,
	media.ErrUnknownType:                  400,
	media.ErrUnsupportedFormat:            400,
	media.ErrForeignObject:                400,
	media.ErrInvalidSignature:             403,
	media.ErrSignatureExpired:             403,
}

var messages = map[error]string{
	post.ErrPostNotFound:                  "Post unavailable",
	comments.ErrCommentNotFound:           "Comment unavailable",
	notifications.ErrNotificationNotFound: "Notification unavailable",
	likes.ErrLikeNotFound:                 "Like unavailable",
	user.ErrUserNotFound:                  "User unavailable",
	routeid.ErrInvalidRoute:               "User unavailable",
	confirm.ErrUnknownAction:              "Confirmation required",
}

// fail answers err the way clients expect it. Unknown errors are logged,
// reported and hidden behind a generic message.
func fail(c *gin.Context, err error) {
	if errs, ok := err.(validate.Errors); ok {
		jsonFormErr(c, errs)
		return
	}
	if e, ok := err.(*post.NotAllowed); ok {
		jsonErr(c, 403, e.Reason)
		return
	}
	for known, status := range statuses {
		if err != known {
			continue
		}
		message, exists := messages[known]
		if !exists {
			message = err.Error()
		}
		jsonErr(c, status, message)
		return
	}

	log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	if client := deps.Container.Errors(); client != nil {
		client.CaptureError(err, map[string]string{"route": c.FullPath()})
	}
	jsonErr(c, 500, "An error occurred!")
}

func signed(c *gin.Context) user.User {
	return c.MustGet("user").(user.User)
}

func actor(usr user.User) notifications.Actor {
	return notifications.Actor{
		ID:         usr.ID,
		Username:   usr.Username,
		ProfilePic: usr.Profile().ProfilePic,
	}
}

// route is the public path of a user profile.
func route(id string) (string, error) {
	encrypted, err := deps.Container.Cipher().Encrypt(id)
	if err != nil {
		return "", err
	}
	return "/userprofile/" + encrypted, nil
}

// picture reads an optional multipart file. A missing file gives nil data.
func picture(c *gin.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size > MaxPictureSize {
		return nil, validate.Errors{field: "Image is too large"}
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, MaxPictureSize))
}
