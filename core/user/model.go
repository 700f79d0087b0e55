package user

import (
	"time"
)

// DefaultProfilePic is shown for users without a picture of their own.
const DefaultProfilePic = "https://res.cloudinary.com/dqp0ejscz/image/upload/v1735899431/blank-profile-picture-973460_1280_idgyn3.png"

type User struct {
	ID                string    `bson:"_id" json:"id"`
	Username          string    `bson:"username" json:"username"`
	LowercaseUsername string    `bson:"lowercaseUsername" json:"lowercaseUsername"`
	Email             string    `bson:"email" json:"email"`
	Password          string    `bson:"password" json:"-"`
	ProfilePic        string    `bson:"profilePic" json:"profilePic"`
	BannerPic         string    `bson:"bannerPic" json:"bannerPic"`
	Bio               string    `bson:"bio" json:"bio"`
	Created           time.Time `bson:"createdAt" json:"createdAt"`
	Updated           time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Users []User

// Profile is the public view of a user.
type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
	BannerPic  string `json:"bannerPic"`
	Bio        string `json:"bio"`
}

// Profile of u with the default picture filled in.
func (u User) Profile() Profile {
	pic := u.ProfilePic
	if pic == "" {
		pic = DefaultProfilePic
	}
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		ProfilePic: pic,
		BannerPic:  u.BannerPic,
		Bio:        u.Bio,
	}
}

// Pictures replaced by a profile update, empty when unchanged.
type Pictures struct {
	Profile string
	Banner  string
}
