package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/domain/service"
)

// SampleAccount is a demo account inserted by SeedSamples.
type SampleAccount struct {
	Name     string
	Email    string
	Password string
}

var SampleAccounts = []SampleAccount{
	{Name: "John Doe", Email: "john@example.com", Password: "password123"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "secret456"},
	{Name: "Bob Johnson", Email: "bob@example.com", Password: "qwerty789"},
}

// SeedSamples inserts SampleAccounts when the store holds no accounts and
// returns the ones actually inserted. Samples whose email got taken in the
// meantime are skipped.
func SeedSamples(ctx context.Context, accounts repo.AccountRepository, hasher service.PasswordHasher, logger *logrus.Logger) ([]SampleAccount, error) {
	existing, err := accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}
	var inserted []SampleAccount
	for _, sa := range SampleAccounts {
		hash, err := hasher.Hash(sa.Password)
		if err != nil {
			return inserted, fmt.Errorf("hash sample password: %w", err)
		}
		if _, err := accounts.Insert(ctx, sa.Name, sa.Email, hash); err != nil {
			if errors.Is(err, repo.ErrEmailTaken) {
				continue
			}
			return inserted, fmt.Errorf("insert sample %s: %w", sa.Email, err)
		}
		inserted = append(inserted, sa)
	}
	if logger != nil {
		logger.WithField("count", len(inserted)).Info("seeded sample accounts")
	}
	return inserted, nil
}
