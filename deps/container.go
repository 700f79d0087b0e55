package deps

import (
	"context"

	"github.com/artworked/core/core/config"
	"github.com/artworked/core/core/mail"
)

// Contains bootstraped dependencies.
var Container Deps

// An ignitor takes a Container and injects bootstraped dependencies.
type Ignitor func(Deps) (Deps, error)

// Bootstrap runs the ignitors over the given config and stores the result
// in Container.
func Bootstrap(c *config.Config) (Deps, error) {
	ignitors := []Ignitor{
		IgniteLogger,
		IgniteStore,
		IgniteBroker,
		IgniteMedia,
		IgniteMailer,
		IgniteSentry,
		IgniteSecurity,
	}

	var err error
	container := Deps{ConfigProvider: c}
	for _, fn := range ignitors {
		container, err = fn(container)
		if err != nil {
			return container, err
		}
	}

	Container = container
	return container, nil
}

// Run starts the background workers of the container until ctx is done.
func (d Deps) Run(ctx context.Context) {
	if smtp, ok := d.MailerProvider.(*mail.SMTP); ok {
		go smtp.Run(ctx)
	}
}

// Close releases the store and broker connections.
func (d Deps) Close() {
	if d.StoreProvider != nil {
		d.StoreProvider.Close()
	}
	if d.BrokerProvider != nil {
		if err := d.BrokerProvider.Close(); err != nil {
			log.Error(err)
		}
	}
	if d.ErrorsProvider != nil {
		d.ErrorsProvider.Close()
	}
}
