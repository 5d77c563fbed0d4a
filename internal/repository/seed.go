package repository

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookkeeping-backend/internal/models"
)

// Seed loads the reference data and the dummy operator account into an empty
// store. Safe to call on every startup; existing records are left alone.
func Seed(s Store) error {
	roles := []models.Role{
		{ID: "role-1", Name: "Admin"},
		{ID: "role-2", Name: "User"},
	}
	for i := range roles {
		if err := createIfMissing(func() error {
			_, err := s.Roles().Get(roles[i].ID)
			return err
		}, func() error {
			return s.Roles().Create(&roles[i])
		}); err != nil {
			return err
		}
	}

	branches := []models.Branch{
		{ID: "branch-1", Name: "Jakarta Pusat"},
		{ID: "branch-2", Name: "Bandung"},
		{ID: "branch-3", Name: "Surabaya"},
	}
	for i := range branches {
		if err := createIfMissing(func() error {
			_, err := s.Branches().Get(branches[i].ID)
			return err
		}, func() error {
			return s.Branches().Create(&branches[i])
		}); err != nil {
			return err
		}
	}

	now := time.Now()
	accounts := []models.Account{
		{AccountID: "coa-1", AccountCode: "4-10001", AccountName: "Penjualan", AccountType: "Pendapatan"},
		{AccountID: "coa-2", AccountCode: "5-10001", AccountName: "Bahan Baku", AccountType: "Beban"},
		{AccountID: "coa-3", AccountCode: "5-10002", AccountName: "Operasional", AccountType: "Beban"},
		{AccountID: "coa-4", AccountCode: "1-10001", AccountName: "Kas", AccountType: "Aset"},
	}
	for i := range accounts {
		accounts[i].IsActive = true
		accounts[i].CreatedAt = now
		accounts[i].UpdatedAt = now
		if err := createIfMissing(func() error {
			_, err := s.Accounts().Get(accounts[i].AccountID)
			return err
		}, func() error {
			return s.Accounts().Create(&accounts[i])
		}); err != nil {
			return err
		}
	}

	existing, err := s.Users().FindByEmail("johndoe@gmail.com")
	if err != nil {
		return err
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("strongpassword123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			ID:           "user-1",
			Username:     "johndoe",
			FullName:     "John Doe",
			Email:        "johndoe@gmail.com",
			PasswordHash: hash,
			RoleID:       "role-1",
			RoleName:     "Admin",
			IsActive:     true,
			Branches:     []string{"branch-1"},
		}
		if err := s.Users().Create(&user); err != nil {
			return err
		}
	}
	return nil
}

func createIfMissing(get func() error, create func() error) error {
	err := get()
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return create()
	}
	return err
}
