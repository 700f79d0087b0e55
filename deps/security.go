package deps

import (
	"errors"

	"github.com/artworked/core/core/confirm"
	"github.com/artworked/core/core/routeid"
	"github.com/artworked/core/core/user"
)

// Default secrets used in development only.
const (
	devSecret      = "artworked-development-secret"
	devRouteSecret = "artworked-development-route-secret"
)

// IgniteSecurity prepares sessions, the route id cipher and pending
// confirmations.
func IgniteSecurity(container Deps) (Deps, error) {
	runtime := container.Config().Copy()
	secret, routeSecret := runtime.Secret, runtime.RouteSecret
	if secret == "" && runtime.Development() {
		secret = devSecret
	}
	if routeSecret == "" && runtime.Development() {
		routeSecret = devRouteSecret
	}

	if secret == "" {
		return container, errors.New("application.secret is not configured")
	}

	cipher, err := routeid.New(routeSecret)
	if err != nil {
		return container, err
	}
	container.CipherProvider = cipher
	container.SessionsProvider = user.NewSessions(secret)
	container.ConfirmProvider = confirm.New()
	return container, nil
}
