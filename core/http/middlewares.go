package http

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/artworked/core/core/user"
	"github.com/artworked/core/deps"
	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("http")

// ConfirmHeader carries the token of a confirmed pending action.
const ConfirmHeader = "X-Confirm-Token"

func jsonErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS,PUT,DELETE,PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, Content-Length, Accept-Encoding, Authorization, "+ConfirmHeader)
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// Authorization reads the bearer session token when present.
func Authorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(token, "Bearer ") {
			c.Next()
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")
		id, err := deps.Container.Sessions().Parse(token)
		if err != nil {
			jsonErr(c, 401, err.Error())
			return
		}

		// Set the token for further usage
		c.Set("token", token)
		c.Set("user_id", id)
		c.Next()
	}
}

func NeedAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("token"); !exists {
			jsonErr(c, 401, "Auth method required")
			return
		}
		c.Next()
	}
}

// UserMiddleware loads signed user data for further use.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.MustGet("user_id").(string)

		// Attempt to retrieve user data otherwise abort request.
		usr, err := user.FindId(c.Request.Context(), deps.Container, id)
		if err == user.ErrUserNotFound {
			jsonErr(c, 401, "Session user unavailable")
			return
		}
		if err != nil {
			log.Error(err)
			jsonErr(c, 500, "An error occurred!")
			return
		}

		c.Set("user", usr)
		c.Next()
	}
}

// Confirmed consumes the pending action of kind over the param target, opened
// by the signed user.
func Confirmed(kind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get(ConfirmHeader)
		if _, err := deps.Container.Confirm().Consume(token, c.GetString("user_id"), kind, c.Param(param)); err != nil {
			jsonErr(c, 428, "Confirmation required")
			return
		}
		c.Next()
	}
}

// ErrorTracking recovers panics, reporting them to sentry when configured.
func ErrorTracking(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rval := recover()
			if rval == nil {
				return
			}

			var err error
			switch v := rval.(type) {
			case *net.OpError:
				if v.Err == syscall.EPIPE || strings.Contains(v.Error(), "write: broken pipe") {
					return
				}
				err = v
			case error:
				err = v
			default:
				err = errors.New(fmt.Sprint(rval))
			}

			log.Errorf("[recovered] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			if client := deps.Container.Errors(); client != nil && !debug {
				packet := raven.NewPacket(err.Error(), raven.NewException(err, raven.NewStacktrace(2, 3, nil)), raven.NewHttp(c.Request))
				client.Capture(packet, map[string]string{"route": c.FullPath()})
			}

			jsonErr(c, 500, "An error occurred!")
		}()

		c.Next()
	}
}
