package notifications

import (
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/store"
	"github.com/op/go-logging"
)

type Deps interface {
	Store() store.Store
	Broker() events.Broker
	Mailer() mail.Mailer
}

var log = logging.MustGetLogger("notifications")
