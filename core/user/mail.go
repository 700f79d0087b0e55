package user

import (
	"github.com/artworked/core/core/mail"
	"github.com/matcornic/hermes/v2"
	gomail "gopkg.in/gomail.v2"
)

// WelcomeEmail greets a new account.
func WelcomeEmail(u User, from string) (*gomail.Message, error) {
	h := mail.Hermes()
	body, err := h.GenerateHTML(hermes.Email{
		Body: hermes.Body{
			Name: u.Username,
			Intros: []string{
				"Welcome to Artworked! Your account is ready to share your artwork.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Start by posting your first piece:",
					Button: hermes.Button{
						Color: "#3D5AFE",
						Text:  "Create a post",
						Link:  h.Product.Link + "create-post",
					},
				},
			},
			Signature: "Thanks",
		},
	})
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("Reply-To", from)
	m.SetHeader("To", u.Email)
	m.SetHeader("Subject", "Welcome to Artworked")
	m.SetBody("text/html", body)
	return m, nil
}
