package user

import (
	"context"

	"github.com/artworked/core/core/store"
	"github.com/artworked/core/modules/helpers"
)

// SearchLimit caps the results of a username search.
var SearchLimit = 10

func FindId(ctx context.Context, d deps, id string) (user User, err error) {
	err = d.Store().C("users").FindId(ctx, id, &user)
	if err == store.ErrNotFound {
		return user, ErrUserNotFound
	}
	return
}

func FindEmail(ctx context.Context, d deps, email string) (user User, err error) {
	return findOne(ctx, d, store.Where("email", helpers.NormalizeEmail(email)))
}

func FindUsername(ctx context.Context, d deps, username string) (user User, err error) {
	return findOne(ctx, d, store.Where("lowercaseUsername", helpers.Lower(username)))
}

func findOne(ctx context.Context, d deps, q store.Query) (user User, err error) {
	var list Users
	err = d.Store().C("users").Find(ctx, q.Take(1), &list)
	if err != nil {
		return
	}
	if len(list) == 0 {
		return user, ErrUserNotFound
	}
	return list[0], nil
}

// Search users whose username starts with term.
func Search(ctx context.Context, d deps, term string) (Users, error) {
	users := Users{}
	term = helpers.Lower(term)
	if term == "" {
		return users, nil
	}
	q := store.All().HasPrefix("lowercaseUsername", term).OrderBy("lowercaseUsername").Take(SearchLimit)
	err := d.Store().C("users").Find(ctx, q, &users)
	return users, err
}

// Resolve loads the profile of the session owner.
func Resolve(ctx context.Context, d deps, userID string) (Profile, error) {
	u, err := FindId(ctx, d, userID)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}
