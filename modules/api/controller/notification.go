package controller

import (
	"net/http"

	"github.com/artworked/core/board/notifications"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

// Notifications of the signed user with the unread count.
func Notifications(c *gin.Context) {
	snap, err := notifications.Take(c.Request.Context(), deps.Container, c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"list":   snap.List.Humanize(),
		"unread": snap.Unread,
	})
}

// ReadNotifications marks everything read, as the panel opens.
func ReadNotifications(c *gin.Context) {
	n, err := notifications.MarkAllRead(c.Request.Context(), deps.Container, c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "updated": n})
}

func ReadNotification(c *gin.Context) {
	err := notifications.MarkRead(c.Request.Context(), deps.Container, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}
