package controller

import (
	"net/http"
	"strings"

	"github.com/artworked/core/core/media"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

type signatureForm struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

// GenerateSignature authorizes one upload of the given type.
func GenerateSignature(c *gin.Context) {
	var form signatureForm
	if err := c.ShouldBindJSON(&form); err != nil || form.UserID == "" || form.Type == "" {
		jsonErr(c, http.StatusBadRequest, "Missing required parameters")
		return
	}

	sig, err := deps.Container.Media().Signer.Sign(form.UserID, form.Type)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sig)
}

// UploadPicture stores a signed multipart upload.
func UploadPicture(c *gin.Context) {
	var sig media.Signature
	if err := c.ShouldBind(&sig); err != nil {
		jsonErr(c, http.StatusBadRequest, "Missing required parameters")
		return
	}
	data, err := picture(c, "file")
	if err != nil {
		fail(c, err)
		return
	}
	if data == nil {
		jsonErr(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	url, err := deps.Container.Media().Upload(c.Request.Context(), c.PostForm("userId"), sig, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type deleteImageForm struct {
	PublicID string `json:"publicId"`
}

// DeleteImage removes one of the signed user's uploads.
func DeleteImage(c *gin.Context) {
	var form deleteImageForm
	if err := c.ShouldBindJSON(&form); err != nil || form.PublicID == "" {
		jsonErr(c, http.StatusBadRequest, "Missing publicId")
		return
	}

	owned := strings.Contains(form.PublicID, "/"+c.GetString("user_id")+"_")
	if !owned {
		jsonErr(c, http.StatusForbidden, "Not enough permissions.")
		return
	}
	if err := deps.Container.Media().Delete(c.Request.Context(), form.PublicID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}
