package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// ErrUndeliverable marks a send Mailgun refused for good (bad address,
// auth, payload). Retrying will not help.
var ErrUndeliverable = errors.New("undeliverable")

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}

// Mailgun sends jobs through one Mailgun client.
type Mailgun struct {
	Sender  string
	Timeout time.Duration
	client  *mg.MailgunImpl
}

// NewMailgun builds a sender for domain. apiBase selects the region
// (e.g. mg.APIBaseEU); empty keeps the US default.
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{Sender: sender, Timeout: 10 * time.Second, client: client}
}

// Send sends job. The HTML body is optional.
func (m *Mailgun) Send(ctx context.Context, job EmailJob) error {
	msg := m.client.NewMessage(m.Sender, job.Subject, job.Text, job.To)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	if job.Tag != "" {
		if err := msg.AddTag(job.Tag); err != nil {
			return fmt.Errorf("%w: %v", ErrUndeliverable, err)
		}
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return classifySendError(err)
}

// classifySendError wraps 4xx answers other than 408 and 429 in
// ErrUndeliverable. Everything else is left retryable.
func classifySendError(err error) error {
	if err == nil {
		return nil
	}
	var resp *mg.UnexpectedResponseError
	if !errors.As(err, &resp) {
		return err
	}
	switch code := resp.Actual; {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return err
	case code >= 400 && code < 500:
		return fmt.Errorf("%w: %v", ErrUndeliverable, err)
	}
	return err
}

var _ Sender = (*Mailgun)(nil)
