package repository

import (
	"sync"

	"bookkeeping-backend/internal/models"
)

// MemoryStore keeps every collection in process memory. It is the default
// backend and the one the tests run against. A single mutex serializes
// access; gin runs handlers concurrently even though each handler performs
// only in-memory work.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     []models.Account
	transactions []models.Transaction
	users        []models.User
	roles        []models.Role
	branches     []models.Branch
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Accounts() AccountRepository         { return (*memAccounts)(s) }
func (s *MemoryStore) Transactions() TransactionRepository { return (*memTransactions)(s) }
func (s *MemoryStore) Users() UserRepository               { return (*memUsers)(s) }
func (s *MemoryStore) Roles() RoleRepository               { return (*memRoles)(s) }
func (s *MemoryStore) Branches() BranchRepository          { return (*memBranches)(s) }

type memAccounts MemoryStore

func (r *memAccounts) List() ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

func (r *memAccounts) Get(id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].AccountID == id {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memAccounts) FindActiveByCode(code, excludeID string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		a := r.accounts[i]
		if a.AccountCode == code && a.IsActive && a.AccountID != excludeID {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memAccounts) Create(a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, *a)
	return nil
}

func (r *memAccounts) Update(a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].AccountID == a.AccountID {
			r.accounts[i] = *a
			return nil
		}
	}
	return ErrNotFound
}

type memTransactions MemoryStore

func (r *memTransactions) List() ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, len(r.transactions))
	for i := range r.transactions {
		out[i] = copyTransaction(&r.transactions[i])
	}
	return out, nil
}

func (r *memTransactions) Get(id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			t := copyTransaction(&r.transactions[i])
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memTransactions) FindActiveByReference(ref, excludeID string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.transactions {
		t := &r.transactions[i]
		if t.ReferenceNo == ref && t.Status == models.StatusActive && t.ID != excludeID {
			out := copyTransaction(t)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memTransactions) Create(t *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, copyTransaction(t))
	return nil
}

func (r *memTransactions) Update(t *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.transactions {
		if r.transactions[i].ID == t.ID {
			r.transactions[i] = copyTransaction(t)
			return nil
		}
	}
	return ErrNotFound
}

// copyTransaction detaches the files slice so callers never alias stored state.
func copyTransaction(t *models.Transaction) models.Transaction {
	out := *t
	out.Files = make([]models.FileMeta, len(t.Files))
	copy(out.Files, t.Files)
	return out
}

type memUsers MemoryStore

func (r *memUsers) List() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *memUsers) Get(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memUsers) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *u)
	return nil
}

func (r *memUsers) Update(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = *u
			return nil
		}
	}
	return ErrNotFound
}

type memRoles MemoryStore

func (r *memRoles) List() ([]models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Role, len(r.roles))
	copy(out, r.roles)
	return out, nil
}

func (r *memRoles) Get(id string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.roles {
		if r.roles[i].ID == id {
			role := r.roles[i]
			return &role, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRoles) Create(role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles = append(r.roles, *role)
	return nil
}

type memBranches MemoryStore

func (r *memBranches) List() ([]models.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Branch, len(r.branches))
	copy(out, r.branches)
	return out, nil
}

func (r *memBranches) Get(id string) (*models.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.branches {
		if r.branches[i].ID == id {
			b := r.branches[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memBranches) Create(b *models.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches = append(r.branches, *b)
	return nil
}
