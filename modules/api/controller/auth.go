package controller

import (
	"net/http"

	"github.com/artworked/core/core/user"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

func Signup(c *gin.Context) {
	var form validate.Signup
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}

	usr, err := user.Signup(c.Request.Context(), deps.Container, form)
	if err != nil {
		fail(c, err)
		return
	}
	session(c, http.StatusCreated, usr)
}

func Login(c *gin.Context) {
	var form validate.Login
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}

	usr, err := user.Login(c.Request.Context(), deps.Container, form)
	if err != nil {
		fail(c, err)
		return
	}
	session(c, http.StatusOK, usr)
}

func session(c *gin.Context, status int, usr user.User) {
	token, err := deps.Container.Sessions().Issue(usr.ID)
	if err != nil {
		fail(c, err)
		return
	}
	path, err := route(usr.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(status, gin.H{
		"status": "okay",
		"token":  token,
		"user":   usr.Profile(),
		"route":  path,
	})
}
