// Package memory keeps accounts in process memory. It honours the same
// contract as the Postgres repository and backs tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
)

type AccountRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]entity.Account
	byEmail map[string]int64
	now     func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[int64]entity.Account),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *AccountRepository) List(_ context.Context) ([]entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, public(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	a = public(a)
	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := r.GetByEmailWithSecret(ctx, email)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = ""
	return a, nil
}

func (r *AccountRepository) GetByEmailWithSecret(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *AccountRepository) Insert(_ context.Context, name, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[email]; taken {
		return 0, repository.ErrEmailTaken
	}
	r.nextID++
	now := r.now()
	a := entity.Account{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[a.ID] = a
	r.byEmail[email] = a.ID
	return a.ID, nil
}

func (r *AccountRepository) Update(_ context.Context, id int64, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	if owner, taken := r.byEmail[email]; taken && owner != id {
		return repository.ErrEmailTaken
	}
	delete(r.byEmail, a.Email)
	a.Name = name
	a.Email = email
	a.UpdatedAt = r.now()
	r.byID[id] = a
	r.byEmail[email] = id
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.byEmail, a.Email)
	delete(r.byID, id)
	return nil
}

// SearchByName matches fragment case-insensitively anywhere in the name.
func (r *AccountRepository) SearchByName(_ context.Context, fragment string) ([]entity.Account, error) {
	needle := strings.ToLower(fragment)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Account, 0)
	for _, a := range r.byID {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, public(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func public(a entity.Account) entity.Account {
	a.PasswordHash = ""
	return a
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
