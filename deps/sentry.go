package deps

import (
	"github.com/getsentry/raven-go"
)

func IgniteSentry(container Deps) (Deps, error) {
	runtime := container.Config().Copy()
	if runtime.SentryDSN == "" {
		return container, nil
	}

	client, err := raven.New(runtime.SentryDSN)
	if err != nil {
		return container, err
	}
	client.SetEnvironment(runtime.Environment)
	container.ErrorsProvider = client
	return container, nil
}
