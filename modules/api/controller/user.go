package controller

import (
	"net/http"

	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/user"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/deps"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Me returns the signed user.
func Me(c *gin.Context) {
	usr := signed(c)
	path, err := route(usr.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  usr.Profile(),
		"email": usr.Email,
		"route": path,
	})
}

// UpdateMe applies the profile form. New pictures come as multipart files
// and are stored only once the form is valid.
func UpdateMe(c *gin.Context) {
	var (
		ctx  = c.Request.Context()
		usr  = signed(c)
		pics user.Pictures
	)

	profile, err := picture(c, "profilePic")
	if err != nil {
		fail(c, err)
		return
	}
	banner, err := picture(c, "bannerPic")
	if err != nil {
		fail(c, err)
		return
	}

	form := validate.Profile{
		Username: c.PostForm("username"),
		Bio:      c.PostForm("bio"),
	}
	if profile != nil {
		form.ProfilePic = mimetype.Detect(profile).String()
	}
	if banner != nil {
		form.BannerPic = mimetype.Detect(banner).String()
	}
	if err := user.CheckProfile(ctx, deps.Container, usr.ID, form); err != nil {
		fail(c, err)
		return
	}

	if profile != nil {
		if pics.Profile, err = deps.Container.Media().Save(ctx, usr.ID, "profilePic", profile); err != nil {
			fail(c, err)
			return
		}
	}
	if banner != nil {
		if pics.Banner, err = deps.Container.Media().Save(ctx, usr.ID, "bannerPic", banner); err != nil {
			discard(c, pics.Profile)
			fail(c, err)
			return
		}
	}

	updated, err := user.UpdateProfile(ctx, deps.Container, usr.ID, form, pics)
	if err != nil {
		discard(c, pics.Profile, pics.Banner)
		fail(c, err)
		return
	}
	replaced(c, usr.ProfilePic, pics.Profile)
	replaced(c, usr.BannerPic, pics.Banner)

	c.JSON(http.StatusOK, gin.H{"status": "okay", "user": updated.Profile()})
}

// replaced drops a previous picture hosted here.
func replaced(c *gin.Context, previous, current string) {
	if previous == "" || current == "" || previous == current {
		return
	}
	err := deps.Container.Media().Delete(c.Request.Context(), previous)
	if err != nil && err != media.ErrForeignObject {
		log.Warningf("Could not delete replaced picture %s: %v", previous, err)
	}
}

// discard drops pictures stored for a request that failed afterwards.
func discard(c *gin.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := deps.Container.Media().Delete(c.Request.Context(), url); err != nil {
			log.Warningf("Could not discard picture %s: %v", url, err)
		}
	}
}

func UpdateEmail(c *gin.Context) {
	var form validate.Email
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}

	usr, err := user.ChangeEmail(c.Request.Context(), deps.Container, signed(c).ID, form)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "email": usr.Email})
}

func UpdatePassword(c *gin.Context) {
	var form validate.Password
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, http.StatusBadRequest, "Invalid request, check the payload.")
		return
	}

	if err := user.ChangePassword(c.Request.Context(), deps.Container, signed(c).ID, form); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}

// SearchUsers autocompletes usernames.
func SearchUsers(c *gin.Context) {
	list, err := user.Search(c.Request.Context(), deps.Container, c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}

	profiles := make([]gin.H, 0, len(list))
	for _, usr := range list {
		path, err := route(usr.ID)
		if err != nil {
			fail(c, err)
			return
		}
		profiles = append(profiles, gin.H{"user": usr.Profile(), "route": path})
	}
	c.JSON(http.StatusOK, profiles)
}

// UserProfile resolves an encrypted user id into the profile and its posts.
func UserProfile(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := deps.Container.Cipher().Decrypt(c.Param("encryptedId"))
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := user.Resolve(ctx, deps.Container, id)
	if err != nil {
		fail(c, err)
		return
	}
	list, err := post.ByUser(ctx, deps.Container, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  profile,
		"posts": list,
	})
}
