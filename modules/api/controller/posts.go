package controller

import (
	"net/http"

	"github.com/artworked/core/board/likes"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/deps"
	"github.com/gin-gonic/gin"
)

// Feed lists every post, newest first.
func Feed(c *gin.Context) {
	var loader post.Loader
	if err := loader.Load(c.Request.Context(), deps.Container); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loader.Data())
}

// Post returns one post. Signed users also get whether they liked it.
func Post(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := post.FindId(ctx, deps.Container, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	liked := false
	if id := c.GetString("user_id"); id != "" {
		_, err := likes.FindByUser(ctx, deps.Container, p.ID, id)
		switch err {
		case nil:
			liked = true
		case likes.ErrLikeNotFound:
		default:
			fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         p,
		"hasUserLiked": liked,
	})
}

// NewPost takes a multipart form with title, description and the image file.
func NewPost(c *gin.Context) {
	usr := signed(c)
	image, err := picture(c, "image")
	if err != nil {
		fail(c, err)
		return
	}

	author := post.Author{
		ID:         usr.ID,
		Username:   usr.Username,
		ProfilePic: usr.Profile().ProfilePic,
	}
	p, err := post.Create(c.Request.Context(), deps.Container, author, post.NewPost{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "okay", "post": p})
}

func DeletePost(c *gin.Context) {
	err := post.Delete(c.Request.Context(), deps.Container, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}

