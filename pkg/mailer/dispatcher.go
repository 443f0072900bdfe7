package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/go-user-management/internal/domain/event"
	mailtpl "github.com/oksasatya/go-user-management/pkg/mailer/templates"
)

// ErrBadMessage marks a delivery that can never be processed; it should be
// dropped rather than requeued.
var ErrBadMessage = errors.New("bad message")

// Dispatcher turns account events into emails.
type Dispatcher struct {
	Sender      Sender
	AppName     string
	CompanyName string
	SupportURL  string
}

// JobForEvent renders the email for ev. ok is false for events that send
// no mail.
func (d *Dispatcher) JobForEvent(ev event.AccountEvent) (job EmailJob, ok bool, err error) {
	var name string
	switch ev.Type {
	case event.AccountCreated:
		name = mailtpl.Welcome
	case event.AccountDeleted:
		name = mailtpl.Farewell
	default:
		return EmailJob{}, false, nil
	}
	if ev.Email == "" {
		return EmailJob{}, false, fmt.Errorf("%w: %s event without email", ErrBadMessage, ev.Type)
	}
	opts := []mailtpl.Option{mailtpl.WithCompany(d.CompanyName, d.SupportURL)}
	if !ev.OccurredAt.IsZero() {
		opts = append(opts, mailtpl.WithTime(ev.OccurredAt))
	}
	data := mailtpl.NewEmailData(d.AppName, ev.Name, ev.Email, opts...)
	subject, text, html, err := mailtpl.Render(name, data)
	if err != nil {
		return EmailJob{}, false, fmt.Errorf("render %s: %w", name, err)
	}
	return EmailJob{To: ev.Email, Subject: subject, Text: text, HTML: html, Tag: string(ev.Type)}, true, nil
}

// Action is what a consumer does with a delivery after Handle.
type Action int

const (
	Ack Action = iota
	Drop
	Requeue
)

// Disposition maps a Handle result to an Action. Bad messages and
// undeliverable mail are dropped; other failures are retried.
func Disposition(err error) Action {
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, ErrBadMessage), errors.Is(err, ErrUndeliverable):
		return Drop
	default:
		return Requeue
	}
}

// Handle decodes one queued event and sends its email, if any.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var ev event.AccountEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	job, ok, err := d.JobForEvent(ev)
	if err != nil {
		if errors.Is(err, ErrBadMessage) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if !ok {
		return nil
	}
	return d.Sender.Send(ctx, job)
}
