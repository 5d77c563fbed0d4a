package repository

import (
	"errors"

	"bookkeeping-backend/internal/models"
)

// ErrNotFound is returned by Get when no record matches the key.
var ErrNotFound = errors.New("record not found")

// Find* lookups used for uniqueness checks return (nil, nil) when nothing
// matches; ErrNotFound is reserved for Get by primary key.

type AccountRepository interface {
	List() ([]models.Account, error)
	Get(id string) (*models.Account, error)
	FindActiveByCode(code, excludeID string) (*models.Account, error)
	Create(a *models.Account) error
	Update(a *models.Account) error
}

type TransactionRepository interface {
	List() ([]models.Transaction, error)
	Get(id string) (*models.Transaction, error)
	FindActiveByReference(ref, excludeID string) (*models.Transaction, error)
	Create(t *models.Transaction) error
	Update(t *models.Transaction) error
}

type UserRepository interface {
	List() ([]models.User, error)
	Get(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(u *models.User) error
	Update(u *models.User) error
}

type RoleRepository interface {
	List() ([]models.Role, error)
	Get(id string) (*models.Role, error)
	Create(r *models.Role) error
}

type BranchRepository interface {
	List() ([]models.Branch, error)
	Get(id string) (*models.Branch, error)
	Create(b *models.Branch) error
}

// Store bundles the per-collection repositories. Handlers and services are
// wired against this interface so the backing store (in-memory or Postgres)
// is an assembly-time decision.
type Store interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Users() UserRepository
	Roles() RoleRepository
	Branches() BranchRepository
}
