package realtime

import (
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/user"
	"github.com/op/go-logging"
)

type deps interface {
	Store() store.Store
	Broker() events.Broker
	Mailer() mail.Mailer
	Sessions() *user.Sessions
}

var log = logging.MustGetLogger("realtime")
