package controller

import (
	"net/http"

	"github.com/artworked/core/board/comments"
	"github.com/artworked/core/board/notifications"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

// Comments of a post with their count.
func Comments(c *gin.Context) {
	thread := comments.NewThread(deps.Container, c.Param("id"), notifications.Actor{})
	view, err := thread.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func NewComment(c *gin.Context) {
	var form validate.Comment
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}

	ctx := c.Request.Context()
	thread := comments.NewThread(deps.Container, c.Param("id"), actor(signed(c)))
	if _, err := thread.Load(ctx); err != nil {
		fail(c, err)
		return
	}
	view, err := thread.Add(ctx, form.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	comment, err := comments.FindId(ctx, deps.Container, c.Param("commentId"))
	if err != nil {
		fail(c, err)
		return
	}
	if comment.PostID != c.Param("id") {
		fail(c, comments.ErrCommentNotFound)
		return
	}

	thread := comments.NewThread(deps.Container, comment.PostID, actor(signed(c)))
	if _, err := thread.Load(ctx); err != nil {
		fail(c, err)
		return
	}
	view, err := thread.Delete(ctx, comment.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
