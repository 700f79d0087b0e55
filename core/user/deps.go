package user

import (
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/store"
)

type deps interface {
	Store() store.Store
	Mailer() mail.Mailer
}
