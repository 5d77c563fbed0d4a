package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/repository"
)

type CoaHandler struct {
	accounts repository.AccountRepository
}

func NewCoaHandler(accounts repository.AccountRepository) *CoaHandler {
	return &CoaHandler{accounts: accounts}
}

// List returns the active accounts, optionally filtered by a
// case-insensitive search over code, name and type.
func (h *CoaHandler) List(c *gin.Context) {
	active, err := h.listActive()
	if err != nil {
		respondError(c, err)
		return
	}
	if search := strings.ToLower(c.Query("search")); search != "" {
		filtered := make([]models.Account, 0, len(active))
		for _, a := range active {
			if strings.Contains(strings.ToLower(a.AccountCode), search) ||
				strings.Contains(strings.ToLower(a.AccountName), search) ||
				strings.Contains(strings.ToLower(a.AccountType), search) {
				filtered = append(filtered, a)
			}
		}
		active = filtered
	}
	respondData(c, http.StatusOK, active, "Successfully retrieved COA data.")
}

// Options serves the dropdown projection used by transaction forms.
func (h *CoaHandler) Options(c *gin.Context) {
	active, err := h.listActive()
	if err != nil {
		respondError(c, err)
		return
	}
	options := make([]models.AccountOption, 0, len(active))
	for _, a := range active {
		options = append(options, models.AccountOption{ID: a.AccountID, Code: a.AccountCode, Name: a.AccountName})
	}
	respondData(c, http.StatusOK, options, "Successfully retrieved COA list.")
}

func (h *CoaHandler) Get(c *gin.Context) {
	account, ok := h.findActive(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, account, "Successfully retrieved COA data.")
}

func (h *CoaHandler) Create(c *gin.Context) {
	var req struct {
		AccountCode string `json:"account_code"`
		AccountName string `json:"account_name"`
		AccountType string `json:"account_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	if req.AccountCode == "" || req.AccountName == "" || req.AccountType == "" {
		respondErrorMessage(c, http.StatusBadRequest,
			"Missing required fields. Please provide account_code, account_name, and account_type.", "")
		return
	}
	existing, err := h.accounts.FindActiveByCode(req.AccountCode, "")
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondErrorMessage(c, http.StatusConflict, "Account code already exists.", "")
		return
	}

	now := time.Now()
	account := models.Account{
		AccountID:   uuid.New().String(),
		AccountCode: req.AccountCode,
		AccountName: req.AccountName,
		AccountType: req.AccountType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.accounts.Create(&account); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, account, fmt.Sprintf("COA %s successfully created.", account.AccountID))
}

func (h *CoaHandler) Update(c *gin.Context) {
	account, ok := h.findActive(c)
	if !ok {
		return
	}
	var req struct {
		AccountCode string `json:"account_code"`
		AccountName string `json:"account_name"`
		AccountType string `json:"account_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	if req.AccountCode != "" {
		existing, err := h.accounts.FindActiveByCode(req.AccountCode, account.AccountID)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			respondErrorMessage(c, http.StatusConflict, "Account code already exists.", "")
			return
		}
		account.AccountCode = req.AccountCode
	}
	if req.AccountName != "" {
		account.AccountName = req.AccountName
	}
	if req.AccountType != "" {
		account.AccountType = req.AccountType
	}
	account.UpdatedAt = time.Now()

	if err := h.accounts.Update(account); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, account, fmt.Sprintf("COA %s successfully updated.", account.AccountID))
}

// Delete soft-deletes the account; its code becomes reusable afterwards.
func (h *CoaHandler) Delete(c *gin.Context) {
	account, ok := h.findActive(c)
	if !ok {
		return
	}
	account.IsActive = false
	account.UpdatedAt = time.Now()
	if err := h.accounts.Update(account); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("COA %s successfully deactivated.", account.AccountID))
}

// ActiveAccounts backs the /api/accounts helper endpoint.
func (h *CoaHandler) ActiveAccounts(c *gin.Context) {
	active, err := h.listActive()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, active, "Success get accounts data")
}

func (h *CoaHandler) listActive() ([]models.Account, error) {
	all, err := h.accounts.List()
	if err != nil {
		return nil, err
	}
	active := make([]models.Account, 0, len(all))
	for _, a := range all {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (h *CoaHandler) findActive(c *gin.Context) (*models.Account, bool) {
	account, err := h.accounts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErrorMessage(c, http.StatusNotFound, "COA not found.", "")
		} else {
			respondError(c, err)
		}
		return nil, false
	}
	if !account.IsActive {
		respondErrorMessage(c, http.StatusNotFound, "COA not found.", "")
		return nil, false
	}
	return account, true
}
