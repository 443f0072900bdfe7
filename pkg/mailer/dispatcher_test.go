package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-management/internal/domain/event"
)

type fakeSender struct {
	sent []EmailJob
	err  error
}

func (s *fakeSender) Send(_ context.Context, job EmailJob) error {
	s.sent = append(s.sent, job)
	return s.err
}

func newDispatcher(s Sender) *Dispatcher {
	return &Dispatcher{Sender: s, AppName: "Accounts", CompanyName: "Acme", SupportURL: "https://acme.test/help"}
}

func encode(t *testing.T, ev event.AccountEvent) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestHandle_Created(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s)
	ev := event.AccountEvent{Type: event.AccountCreated, AccountID: 1, Name: "John Doe", Email: "john@example.com", OccurredAt: time.Now()}

	require.NoError(t, d.Handle(context.Background(), encode(t, ev)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "john@example.com", s.sent[0].To)
	assert.Equal(t, "Welcome to Accounts, John Doe", s.sent[0].Subject)
	assert.Contains(t, s.sent[0].Text, "https://acme.test/help")
	assert.Contains(t, s.sent[0].HTML, "Acme")
	assert.Equal(t, "account.created", s.sent[0].Tag)
}

func TestHandle_Deleted(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s)
	ev := event.AccountEvent{Type: event.AccountDeleted, AccountID: 1, Name: "Jane", Email: "jane@example.com"}

	require.NoError(t, d.Handle(context.Background(), encode(t, ev)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "jane@example.com", s.sent[0].To)
	assert.NotEmpty(t, s.sent[0].Subject)
	assert.NotContains(t, s.sent[0].Text, "0001", "no timestamp without occurred_at")
}

func TestHandle_UpdatedSendsNothing(t *testing.T) {
	s := &fakeSender{}
	ev := event.AccountEvent{Type: event.AccountUpdated, AccountID: 1, Email: "a@example.com"}
	require.NoError(t, newDispatcher(s).Handle(context.Background(), encode(t, ev)))
	assert.Empty(t, s.sent)
}

func TestHandle_BadMessages(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s)

	err := d.Handle(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrBadMessage)

	err = d.Handle(context.Background(), encode(t, event.AccountEvent{Type: event.AccountCreated, AccountID: 1}))
	assert.ErrorIs(t, err, ErrBadMessage)
	assert.Empty(t, s.sent)
}

func TestHandle_SendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun 503")}
	ev := event.AccountEvent{Type: event.AccountCreated, AccountID: 1, Name: "A", Email: "a@example.com"}

	err := newDispatcher(s).Handle(context.Background(), encode(t, ev))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadMessage)
	assert.Equal(t, Requeue, Disposition(err))
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, Ack, Disposition(nil))
	assert.Equal(t, Drop, Disposition(fmt.Errorf("%w: truncated", ErrBadMessage)))
	assert.Equal(t, Drop, Disposition(fmt.Errorf("%w: 400", ErrUndeliverable)))
	assert.Equal(t, Requeue, Disposition(errors.New("connection reset")))
}

func TestHandle_UndeliverableIsDropped(t *testing.T) {
	s := &fakeSender{err: fmt.Errorf("%w: mailgun 400", ErrUndeliverable)}
	ev := event.AccountEvent{Type: event.AccountCreated, AccountID: 1, Name: "A", Email: "a@example.com"}

	err := newDispatcher(s).Handle(context.Background(), encode(t, ev))
	assert.Equal(t, Drop, Disposition(err))
}
