package likes

import (
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/store"
	"github.com/op/go-logging"
)

type Deps interface {
	Store() store.Store
	Broker() events.Broker
	Mailer() mail.Mailer
	Media() *media.Service
}

var log = logging.MustGetLogger("likes")
