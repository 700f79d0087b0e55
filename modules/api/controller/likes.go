package controller

import (
	"context"
	"net/http"

	"github.com/artworked/core/board/likes"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

func likeState(c *gin.Context, op func(*likes.Controller, context.Context) (likes.State, error)) {
	ctx := c.Request.Context()
	ctrl := likes.NewController(deps.Container, c.Param("id"), actor(signed(c)))
	if _, err := ctrl.Load(ctx); err != nil {
		fail(c, err)
		return
	}

	state, err := op(ctrl, ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func LikeState(c *gin.Context) {
	likeState(c, func(ctrl *likes.Controller, ctx context.Context) (likes.State, error) {
		return ctrl.State(), nil
	})
}

func Like(c *gin.Context) {
	likeState(c, (*likes.Controller).Like)
}

func Unlike(c *gin.Context) {
	likeState(c, (*likes.Controller).Unlike)
}
