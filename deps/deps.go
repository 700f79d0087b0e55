package deps

import (
	"github.com/artworked/core/core/config"
	"github.com/artworked/core/core/confirm"
	"github.com/artworked/core/core/events"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/media"
	"github.com/artworked/core/core/routeid"
	"github.com/artworked/core/core/store"
	"github.com/artworked/core/core/user"
	"github.com/getsentry/raven-go"
	"github.com/op/go-logging"
)

type Deps struct {
	ConfigProvider   *config.Config
	LoggerProvider   *logging.Logger
	StoreProvider    store.Store
	BrokerProvider   events.Broker
	MediaProvider    *media.Service
	MailerProvider   mail.Mailer
	ErrorsProvider   *raven.Client
	CipherProvider   *routeid.Cipher
	SessionsProvider *user.Sessions
	ConfirmProvider  *confirm.Workflow
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

func (d Deps) Log() *logging.Logger {
	return d.LoggerProvider
}

func (d Deps) Store() store.Store {
	return d.StoreProvider
}

func (d Deps) Broker() events.Broker {
	return d.BrokerProvider
}

func (d Deps) Media() *media.Service {
	return d.MediaProvider
}

func (d Deps) Mailer() mail.Mailer {
	return d.MailerProvider
}

// Errors is nil when no sentry dsn is configured.
func (d Deps) Errors() *raven.Client {
	return d.ErrorsProvider
}

func (d Deps) Cipher() *routeid.Cipher {
	return d.CipherProvider
}

func (d Deps) Sessions() *user.Sessions {
	return d.SessionsProvider
}

func (d Deps) Confirm() *confirm.Workflow {
	return d.ConfirmProvider
}
