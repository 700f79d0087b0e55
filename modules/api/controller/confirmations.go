package controller

import (
	"net/http"

	"github.com/artworked/core/core/confirm"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

type confirmationForm struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Message  string `json:"message"`
}

// NewConfirmation opens a pending action the client shows before deleting.
func NewConfirmation(c *gin.Context) {
	var form confirmationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}
	if form.Kind != confirm.DELETE_POST && form.Kind != confirm.DELETE_COMMENT {
		jsonErr(c, http.StatusBadRequest, "Unknown action")
		return
	}
	if form.TargetID == "" {
		jsonErr(c, http.StatusBadRequest, "Missing target")
		return
	}

	message := form.Message
	if message == "" {
		message = confirm.Message(form.Kind)
	}
	c.JSON(http.StatusCreated, deps.Container.Confirm().Request(signed(c).ID, message, form.Kind, form.TargetID))
}

func CancelConfirmation(c *gin.Context) {
	deps.Container.Confirm().Cancel(c.Param("token"), signed(c).ID)
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}
