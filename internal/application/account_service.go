package application

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/event"
	repo "github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/domain/service"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

// EventPublisher delivers account events. *helpers.RabbitPublisher satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// dummySecret is hashed once and verified against when a login names an
// unknown email, so both failure paths pay for one bcrypt comparison.
const dummySecret = "account-service-timing-equalizer"

type Service struct {
	Repo   repo.AccountRepository
	Hasher service.PasswordHasher
	Events EventPublisher
	Logger *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService wires the account service. events may be nil. The dummy
// digest for unknown-email logins is computed here, so the first failed
// login costs the same as any other.
func NewService(repo repo.AccountRepository, hasher service.PasswordHasher, events EventPublisher, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &Service{Repo: repo, Hasher: hasher, Events: events, Logger: logger}
	if hasher != nil {
		s.prepareDummy()
	}
	return s
}

// ParseAccountID accepts a plain base-10 non-negative integer.
func ParseAccountID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Create validates p, rejects a taken email, hashes the password and
// stores the account. It returns the new id.
func (s *Service) Create(ctx context.Context, p validation.Payload) (int64, error) {
	if res := validation.ValidateAccount(p); !res.Valid {
		return 0, validationError(res.Errors)
	}
	name, _ := p.String("name")
	name = strings.TrimSpace(name)
	email, _ := p.String("email")
	password, _ := p.String("password")

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return 0, conflict(MsgEmailExists)
	} else if !errors.Is(err, repo.ErrAccountNotFound) {
		return 0, internal("lookup account by email", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return 0, internal("hash password", err)
	}

	id, err := s.Repo.Insert(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return 0, conflict(MsgEmailExists)
		}
		return 0, internal("insert account", err)
	}

	s.Logger.WithField("account_id", id).Info("account created")
	s.publish(ctx, event.AccountCreated, entity.Account{ID: id, Name: name, Email: email})
	return id, nil
}

// List returns every account ordered by id.
func (s *Service) List(ctx context.Context) ([]entity.Account, error) {
	accounts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, internal("list accounts", err)
	}
	return accounts, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*entity.Account, error) {
	id, ok := ParseAccountID(rawID)
	if !ok {
		return nil, badRequest(MsgInvalidID)
	}
	return s.lookup(ctx, id)
}

// Update replaces name and email. The email conflict check only runs when
// the email actually changes.
func (s *Service) Update(ctx context.Context, rawID string, p validation.Payload) error {
	id, ok := ParseAccountID(rawID)
	if !ok {
		return badRequest(MsgInvalidID)
	}
	if res := validation.ValidateAccountUpdate(p); !res.Valid {
		return validationError(res.Errors)
	}
	name, _ := p.String("name")
	name = strings.TrimSpace(name)
	email, _ := p.String("email")

	current, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	if email != current.Email {
		other, err := s.Repo.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != id:
			return conflict(MsgEmailTakenByOther)
		case err != nil && !errors.Is(err, repo.ErrAccountNotFound):
			return internal("lookup account by email", err)
		}
	}

	if err := s.Repo.Update(ctx, id, name, email); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailTaken):
			return conflict(MsgEmailTakenByOther)
		case errors.Is(err, repo.ErrAccountNotFound):
			return notFound()
		}
		return internal("update account", err)
	}

	s.Logger.WithField("account_id", id).Info("account updated")
	s.publish(ctx, event.AccountUpdated, entity.Account{ID: id, Name: name, Email: email})
	return nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := ParseAccountID(rawID)
	if !ok {
		return badRequest(MsgInvalidID)
	}
	current, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return notFound()
		}
		return internal("delete account", err)
	}

	s.Logger.WithField("account_id", id).Info("account deleted")
	s.publish(ctx, event.AccountDeleted, *current)
	return nil
}

// Search returns accounts whose name contains the trimmed query, ordered by name.
func (s *Service) Search(ctx context.Context, name string) ([]entity.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest(MsgNameParamRequired)
	}
	// stored names never contain NUL, and Postgres rejects it in a pattern
	if strings.ContainsRune(name, 0) {
		return []entity.Account{}, nil
	}
	accounts, err := s.Repo.SearchByName(ctx, name)
	if err != nil {
		return nil, internal("search accounts", err)
	}
	return accounts, nil
}

// Authenticate checks an email/password pair and returns the account id.
// Unknown email and wrong password fail with the same error.
func (s *Service) Authenticate(ctx context.Context, p validation.Payload) (int64, error) {
	if res := validation.ValidateLogin(p); !res.Valid {
		return 0, validationError(res.Errors)
	}
	email, _ := p.String("email")
	password, _ := p.String("password")

	a, err := s.Repo.GetByEmailWithSecret(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			s.verifyDummy(password)
			return 0, authFailed()
		}
		return 0, internal("lookup credentials", err)
	}
	if !s.Hasher.Verify(password, a.PasswordHash) {
		return 0, authFailed()
	}

	s.Logger.WithField("account_id", a.ID).Info("account logged in")
	return a.ID, nil
}

func (s *Service) lookup(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, notFound()
		}
		return nil, internal("get account", err)
	}
	return a, nil
}

func (s *Service) prepareDummy() {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash(dummySecret)
		if err != nil {
			s.Logger.WithError(err).Warn("dummy hash unavailable")
			return
		}
		s.dummyHash = h
	})
}

func (s *Service) verifyDummy(password string) {
	s.prepareDummy()
	if s.dummyHash != "" {
		_ = s.Hasher.Verify(password, s.dummyHash)
	}
}

func (s *Service) publish(ctx context.Context, typ event.Type, a entity.Account) {
	if s.Events == nil {
		return
	}
	ev := event.AccountEvent{
		Type:       typ,
		AccountID:  a.ID,
		Name:       a.Name,
		Email:      a.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"account_id": a.ID,
			"event":      typ,
		}).Warn("publish account event failed")
	}
}
