package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matcornic/hermes/v2"
	"github.com/op/go-logging"
	gomail "gopkg.in/gomail.v2"
)

var log = logging.MustGetLogger("mail")

// ErrQueueFull is returned when the send worker is behind.
var ErrQueueFull = errors.New("mail queue is full")

// Mailer delivers composed messages.
type Mailer interface {
	From() string
	Send(m *gomail.Message) error
}

// Hermes theme used for every email.
func Hermes() hermes.Hermes {
	return hermes.Hermes{
		Product: hermes.Product{
			Name:      "Artworked",
			Link:      "https://artworked.app/",
			Copyright: "Artworked",
		},
	}
}

// SMTP queues messages for a background send worker.
type SMTP struct {
	In     chan *gomail.Message
	from   string
	dialer *gomail.Dialer
}

func NewSMTP(server string, port int, user, password, from string) *SMTP {
	return &SMTP{
		In:     make(chan *gomail.Message, 4),
		from:   from,
		dialer: gomail.NewPlainDialer(server, port, user, password),
	}
}

func (s *SMTP) From() string {
	return s.from
}

func (s *SMTP) Send(m *gomail.Message) error {
	select {
	case s.In <- m:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run sends queued messages until ctx is done. The connection to the SMTP
// server is closed after 30 seconds without mail.
func (s *SMTP) Run(ctx context.Context) {
	var (
		sender gomail.SendCloser
		err    error
		open   = false
	)
	log.Info("Mail send worker has started...")
	for {
		select {
		case <-ctx.Done():
			if open {
				sender.Close()
			}
			log.Info("Mail send worker has stopped...")
			return
		case m := <-s.In:
			if !open {
				if sender, err = s.dialer.Dial(); err != nil {
					log.Errorf("Could not dial mail server: %v", err)
					continue
				}
				open = true
			}
			if err := gomail.Send(sender, m); err != nil {
				log.Error(err)
			}
		case <-time.After(30 * time.Second):
			if open {
				if err := sender.Close(); err != nil {
					log.Error(err)
				}
				open = false
			}
		}
	}
}

// DiscardKeep is how many messages a Discard mailer remembers.
const DiscardKeep = 100

// Discard keeps the last messages in memory instead of sending them. Used
// when mail is not configured and in tests.
type Discard struct {
	mu   sync.Mutex
	from string
	sent []*gomail.Message
}

func NewDiscard(from string) *Discard {
	return &Discard{from: from}
}

func (d *Discard) From() string {
	return d.from
}

func (d *Discard) Send(m *gomail.Message) error {
	d.mu.Lock()
	if len(d.sent) == DiscardKeep {
		d.sent = d.sent[1:]
	}
	d.sent = append(d.sent, m)
	d.mu.Unlock()
	log.Debugf("Discarding mail message to %v", m.GetHeader("To"))
	return nil
}

// Sent messages so far.
func (d *Discard) Sent() []*gomail.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*gomail.Message(nil), d.sent...)
}
