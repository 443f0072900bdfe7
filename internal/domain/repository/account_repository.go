package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// AccountRepository defines persistence for accounts. Implementations own
// the email uniqueness invariant and report a duplicate as ErrEmailTaken.
// Only GetByEmailWithSecret returns the password hash.
type AccountRepository interface {
	List(ctx context.Context) ([]entity.Account, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByEmailWithSecret(ctx context.Context, email string) (*entity.Account, error)
	Insert(ctx context.Context, name, email, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, name, email string) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, fragment string) ([]entity.Account, error)
}
