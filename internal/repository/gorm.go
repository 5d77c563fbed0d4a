package repository

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bookkeeping-backend/internal/models"
)

// GormStore persists the collections in Postgres. Selected at startup when
// DB_DSN is set; the API behavior is identical to the in-memory backend.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the schema for every collection.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Role{},
		&models.Branch{},
		&models.Account{},
		&userRow{},
		&transactionRow{},
	)
}

func (s *GormStore) Accounts() AccountRepository         { return &gormAccounts{db: s.db} }
func (s *GormStore) Transactions() TransactionRepository { return &gormTransactions{db: s.db} }
func (s *GormStore) Users() UserRepository               { return &gormUsers{db: s.db} }
func (s *GormStore) Roles() RoleRepository               { return &gormRoles{db: s.db} }
func (s *GormStore) Branches() BranchRepository          { return &gormBranches{db: s.db} }

// transactionRow is the storage shape of models.Transaction; the files
// slice rides in a JSON column.
type transactionRow struct {
	ID              string `gorm:"primaryKey"`
	TransactionDate string
	TransactionType string `gorm:"index"`
	ReferenceNo     string `gorm:"index"`
	BranchID        string
	BranchName      string
	AccountID       string `gorm:"index"`
	AccountCode     string
	AccountName     string
	Notes           string
	TotalAmount     float64
	Status          string `gorm:"index"`
	Files           datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (transactionRow) TableName() string { return "transactions" }

func toTransactionRow(t *models.Transaction) (*transactionRow, error) {
	files := t.Files
	if files == nil {
		files = []models.FileMeta{}
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}
	return &transactionRow{
		ID:              t.ID,
		TransactionDate: t.TransactionDate,
		TransactionType: t.TransactionType,
		ReferenceNo:     t.ReferenceNo,
		BranchID:        t.BranchID,
		BranchName:      t.BranchName,
		AccountID:       t.AccountID,
		AccountCode:     t.AccountCode,
		AccountName:     t.AccountName,
		Notes:           t.Notes,
		TotalAmount:     t.TotalAmount,
		Status:          t.Status,
		Files:           datatypes.JSON(raw),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}, nil
}

func (row *transactionRow) toModel() (*models.Transaction, error) {
	var files []models.FileMeta
	if len(row.Files) > 0 {
		if err := json.Unmarshal(row.Files, &files); err != nil {
			return nil, err
		}
	}
	if files == nil {
		files = []models.FileMeta{}
	}
	return &models.Transaction{
		ID:              row.ID,
		TransactionDate: row.TransactionDate,
		TransactionType: row.TransactionType,
		ReferenceNo:     row.ReferenceNo,
		BranchID:        row.BranchID,
		BranchName:      row.BranchName,
		AccountID:       row.AccountID,
		AccountCode:     row.AccountCode,
		AccountName:     row.AccountName,
		Notes:           row.Notes,
		TotalAmount:     row.TotalAmount,
		Status:          row.Status,
		Files:           files,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

// userRow stores the branch references as a JSON column.
type userRow struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"index"`
	FullName     string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash []byte
	RoleID       string
	RoleName     string
	IsActive     bool
	Branches     datatypes.JSON
}

func (userRow) TableName() string { return "users" }

func toUserRow(u *models.User) (*userRow, error) {
	branches := u.Branches
	if branches == nil {
		branches = []string{}
	}
	raw, err := json.Marshal(branches)
	if err != nil {
		return nil, err
	}
	return &userRow{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RoleID:       u.RoleID,
		RoleName:     u.RoleName,
		IsActive:     u.IsActive,
		Branches:     datatypes.JSON(raw),
	}, nil
}

func (row *userRow) toModel() (*models.User, error) {
	var branches []string
	if len(row.Branches) > 0 {
		if err := json.Unmarshal(row.Branches, &branches); err != nil {
			return nil, err
		}
	}
	return &models.User{
		ID:           row.ID,
		Username:     row.Username,
		FullName:     row.FullName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		RoleID:       row.RoleID,
		RoleName:     row.RoleName,
		IsActive:     row.IsActive,
		Branches:     branches,
	}, nil
}

type gormAccounts struct {
	db *gorm.DB
}

func (r *gormAccounts) List() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("created_at").Find(&accounts).Error
	return accounts, err
}

func (r *gormAccounts) Get(id string) (*models.Account, error) {
	var a models.Account
	if err := r.db.First(&a, "account_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *gormAccounts) FindActiveByCode(code, excludeID string) (*models.Account, error) {
	q := r.db.Where("account_code = ? AND is_active = ?", code, true)
	if excludeID != "" {
		q = q.Where("account_id <> ?", excludeID)
	}
	var a models.Account
	if err := q.First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *gormAccounts) Create(a *models.Account) error {
	return r.db.Create(a).Error
}

func (r *gormAccounts) Update(a *models.Account) error {
	return r.db.Save(a).Error
}

type gormTransactions struct {
	db *gorm.DB
}

func (r *gormTransactions) List() ([]models.Transaction, error) {
	var rows []transactionRow
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *gormTransactions) Get(id string) (*models.Transaction, error) {
	var row transactionRow
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *gormTransactions) FindActiveByReference(ref, excludeID string) (*models.Transaction, error) {
	q := r.db.Where("reference_no = ? AND status = ?", ref, models.StatusActive)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var row transactionRow
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *gormTransactions) Create(t *models.Transaction) error {
	row, err := toTransactionRow(t)
	if err != nil {
		return err
	}
	return r.db.Create(row).Error
}

func (r *gormTransactions) Update(t *models.Transaction) error {
	row, err := toTransactionRow(t)
	if err != nil {
		return err
	}
	return r.db.Save(row).Error
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) List() ([]models.User, error) {
	var rows []userRow
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(rows))
	for i := range rows {
		u, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *gormUsers) Get(id string) (*models.User, error) {
	var row userRow
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *gormUsers) FindByEmail(email string) (*models.User, error) {
	var row userRow
	if err := r.db.First(&row, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *gormUsers) Create(u *models.User) error {
	row, err := toUserRow(u)
	if err != nil {
		return err
	}
	return r.db.Create(row).Error
}

func (r *gormUsers) Update(u *models.User) error {
	row, err := toUserRow(u)
	if err != nil {
		return err
	}
	return r.db.Save(row).Error
}

type gormRoles struct {
	db *gorm.DB
}

func (r *gormRoles) List() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Find(&roles).Error
	return roles, err
}

func (r *gormRoles) Get(id string) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *gormRoles) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

type gormBranches struct {
	db *gorm.DB
}

func (r *gormBranches) List() ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.Find(&branches).Error
	return branches, err
}

func (r *gormBranches) Get(id string) (*models.Branch, error) {
	var b models.Branch
	if err := r.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *gormBranches) Create(b *models.Branch) error {
	return r.db.Create(b).Error
}
