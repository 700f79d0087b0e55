package deps

import (
	"github.com/artworked/core/core/mail"
)

// IgniteMailer uses smtp when mail.server is configured and discards mail
// otherwise.
func IgniteMailer(container Deps) (Deps, error) {
	m := container.Config().Copy().Mail
	if m.Server == "" {
		log.Info("No mail server configured, emails are discarded")
		container.MailerProvider = mail.NewDiscard(m.From)
		return container, nil
	}

	container.MailerProvider = mail.NewSMTP(m.Server, m.Port, m.User, m.Password, m.From)
	return container, nil
}
