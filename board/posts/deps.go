package post

import (
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/store"
	"github.com/op/go-logging"
)

type deps interface {
	Store() store.Store
	Broker() events.Broker
	Media() *media.Service
}

var log = logging.MustGetLogger("posts")
