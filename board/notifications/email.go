package notifications

import (
	"context"

	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/mail"
	"github.com/artworked/core/core/user"
	"github.com/matcornic/hermes/v2"
	"gopkg.in/gomail.v2"
)

// SomeoneCommentedYourPostEmail notification constructor.
func SomeoneCommentedYourPostEmail(p post.Post, usr user.User, actor Actor, from string) (*gomail.Message, error) {
	h := mail.Hermes()
	name := actor.Username
	if name == "" {
		name = DefaultUsername
	}
	body, err := h.GenerateHTML(hermes.Email{
		Body: hermes.Body{
			Name: usr.Username,
			Intros: []string{
				name + " commented to your post \"" + p.Title + "\".",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Read the comment:",
					Button: hermes.Button{
						Color: "#3D5AFE",
						Text:  "Open the post",
						Link:  h.Product.Link + "post/" + p.ID,
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
	m.SetHeader("To", usr.Email)
	m.SetHeader("Subject", "Someone commented your post: "+p.Title)
	m.SetBody("text/html", body)
	return m, nil
}

// MailComment emails the author of p about a new comment, when mail is
// configured. Failures are logged.
func MailComment(ctx context.Context, deps Deps, p post.Post, actor Actor) {
	m := deps.Mailer()
	if m == nil || p.UserID == actor.ID {
		return
	}
	usr, err := user.FindId(ctx, deps, p.UserID)
	if err != nil {
		log.Warningf("Could not find author %s of post %s: %v", p.UserID, p.ID, err)
		return
	}
	msg, err := SomeoneCommentedYourPostEmail(p, usr, actor, m.From())
	if err == nil {
		err = m.Send(msg)
	}
	if err != nil {
		log.Errorf("Could not send comment email to %s: %v", usr.ID, err)
	}
}
