package user

import (
	"context"
	"errors"
	"time"

	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/validate"
	"github.com/artworked/core/modules/helpers"
	"gopkg.in/mgo.v2/bson"
)

var (
	ErrUserNotFound            = errors.New("User has not been found by given criteria.")
	ErrUsernameTaken           = errors.New("This username is already in use. Please try a different one.")
	ErrEmailTaken              = errors.New("This email is already in use. Please try with a different email.")
	ErrInvalidCredentials      = errors.New("Invalid email or password")
	ErrCurrentPasswordRequired = errors.New("Current password is required for reauthentication.")
	ErrWrongPassword           = errors.New("The current password is incorrect.")
)

// Signup validates the form and creates the account. Username and email
// uniqueness is checked before the write, the mgo unique indexes catch the
// remaining races.
func Signup(ctx context.Context, d deps, form validate.Signup) (User, error) {
	form.Username = helpers.Text(form.Username)
	if err := validate.Struct(form); err != nil {
		return User{}, err
	}
	if err := usernameFree(ctx, d, "", form.Username); err != nil {
		return User{}, err
	}
	if _, err := FindEmail(ctx, d, form.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return User{}, err
	}

	hash, err := helpers.HashPassword(form.Password)
	if err != nil {
		return User{}, err
	}
	now := time.Now()
	u := User{
		ID:                store.NewID(),
		Username:          form.Username,
		LowercaseUsername: helpers.Lower(form.Username),
		Email:             helpers.NormalizeEmail(form.Email),
		Password:          hash,
		ProfilePic:        DefaultProfilePic,
		Created:           now,
		Updated:           now,
	}
	err = d.Store().C("users").Insert(ctx, u)
	if err == store.ErrDuplicate {
		return User{}, ErrUsernameTaken
	}
	if err != nil {
		return User{}, err
	}

	if m := d.Mailer(); m != nil {
		msg, err := WelcomeEmail(u, m.From())
		if err == nil {
			err = m.Send(msg)
		}
		if err != nil {
			log.Warningf("Could not send welcome email to %s: %v", u.ID, err)
		}
	}
	return u, nil
}

// Login checks the credentials of the form.
func Login(ctx context.Context, d deps, form validate.Login) (User, error) {
	if err := validate.Struct(form); err != nil {
		return User{}, err
	}
	u, err := FindEmail(ctx, d, form.Email)
	if err == ErrUserNotFound {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if !helpers.CheckPasswordHash(form.Password, u.Password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CheckProfile validates the profile form of id, username uniqueness
// included, so pictures are only uploaded for a form that can be applied.
func CheckProfile(ctx context.Context, d deps, id string, form validate.Profile) error {
	form.Username = helpers.Text(form.Username)
	if err := validate.Struct(form); err != nil {
		return err
	}
	return usernameFree(ctx, d, id, form.Username)
}

// UpdateProfile applies the profile form. Empty pictures keep the current
// ones.
func UpdateProfile(ctx context.Context, d deps, id string, form validate.Profile, pics Pictures) (User, error) {
	form.Username = helpers.Text(form.Username)
	if err := validate.Struct(form); err != nil {
		return User{}, err
	}
	u, err := FindId(ctx, d, id)
	if err != nil {
		return User{}, err
	}
	if helpers.Lower(form.Username) != u.LowercaseUsername {
		if err := usernameFree(ctx, d, id, form.Username); err != nil {
			return User{}, err
		}
	}
	u.Username = form.Username
	u.LowercaseUsername = helpers.Lower(form.Username)
	u.Bio = helpers.Text(form.Bio)
	if pics.Profile != "" {
		u.ProfilePic = pics.Profile
	}
	if pics.Banner != "" {
		u.BannerPic = pics.Banner
	}
	u.Updated = time.Now()
	err = d.Store().C("users").Update(ctx, id, store.Update{Set: bson.M{
		"username":          u.Username,
		"lowercaseUsername": u.LowercaseUsername,
		"bio":               u.Bio,
		"profilePic":        u.ProfilePic,
		"bannerPic":         u.BannerPic,
		"updatedAt":         u.Updated,
	}})
	if err == store.ErrDuplicate {
		return User{}, ErrUsernameTaken
	}
	return u, err
}

func ChangeEmail(ctx context.Context, d deps, id string, form validate.Email) (User, error) {
	if err := validate.Struct(form); err != nil {
		return User{}, err
	}
	u, err := FindId(ctx, d, id)
	if err != nil {
		return User{}, err
	}
	email := helpers.NormalizeEmail(form.Email)
	if email == u.Email {
		return u, nil
	}
	if _, err := FindEmail(ctx, d, email); err == nil {
		return User{}, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return User{}, err
	}
	u.Email = email
	u.Updated = time.Now()
	upd := store.Set("email", email)
	upd.Set["updatedAt"] = u.Updated
	if err := d.Store().C("users").Update(ctx, id, upd); err != nil {
		if err == store.ErrDuplicate {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// ChangePassword requires the current password whenever one is set.
func ChangePassword(ctx context.Context, d deps, id string, form validate.Password) error {
	if err := validate.Struct(form); err != nil {
		return err
	}
	u, err := FindId(ctx, d, id)
	if err != nil {
		return err
	}
	if u.Password != "" {
		if form.CurrentPassword == "" {
			return ErrCurrentPasswordRequired
		}
		if !helpers.CheckPasswordHash(form.CurrentPassword, u.Password) {
			return ErrWrongPassword
		}
	}
	hash, err := helpers.HashPassword(form.Password)
	if err != nil {
		return err
	}
	upd := store.Set("password", hash)
	upd.Set["updatedAt"] = time.Now()
	return d.Store().C("users").Update(ctx, id, upd)
}

func usernameFree(ctx context.Context, d deps, self, username string) error {
	taken, err := FindUsername(ctx, d, username)
	if err == ErrUserNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if taken.ID != self {
		return ErrUsernameTaken
	}
	return nil
}
