package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/repository"
)

type UserHandler struct {
	store repository.Store
}

func NewUserHandler(store repository.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.Users().List()
	if err != nil {
		respondError(c, err)
		return
	}
	if search := c.Query("search"); search != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if strings.Contains(u.Username, search) || strings.Contains(u.Email, search) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	respondData(c, http.StatusOK, users, "Successfully Get User")
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.findUser(c)
	if err != nil {
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"full_name": user.FullName,
		"email":     user.Email,
		"role_id":   user.RoleID,
		"is_active": user.IsActive,
		"branches":  user.Branches,
	}, "Successfully Get User")
}

func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Username string   `json:"username"`
		FullName string   `json:"full_name"`
		Email    string   `json:"email"`
		Password string   `json:"password"`
		RoleID   string   `json:"role_id"`
		Branches []string `json:"branches"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "Username or Password are required")
		return
	}
	existing, err := h.store.Users().FindByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondMessage(c, http.StatusConflict, "User with this email already exists.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}
	roleName := "User"
	if role, err := h.store.Roles().Get(req.RoleID); err == nil {
		roleName = role.Name
	}
	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
		RoleName:     roleName,
		IsActive:     true,
		Branches:     req.Branches,
	}
	if err := h.store.Users().Create(&user); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, fmt.Sprintf("User %s Successfully Created", user.ID))
}

// Update merges the provided fields onto the user; a new password is
// re-hashed before storage.
func (h *UserHandler) Update(c *gin.Context) {
	user, err := h.findUser(c)
	if err != nil {
		return
	}
	var req struct {
		Username *string   `json:"username"`
		FullName *string   `json:"full_name"`
		Email    *string   `json:"email"`
		Password *string   `json:"password"`
		RoleID   *string   `json:"role_id"`
		IsActive *bool     `json:"is_active"`
		Branches *[]string `json:"branches"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		user.PasswordHash = hash
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
		if role, err := h.store.Roles().Get(*req.RoleID); err == nil {
			user.RoleName = role.Name
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Branches != nil {
		user.Branches = *req.Branches
	}
	if err := h.store.Users().Update(user); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("User %s Successfully Updated", user.ID))
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	user, err := h.findUser(c)
	if err != nil {
		return
	}
	user.IsActive = false
	if err := h.store.Users().Update(user); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("User %s Successfully Deactivate", user.ID))
}

func (h *UserHandler) Roles(c *gin.Context) {
	roles, err := h.store.Roles().List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, roles, "Successfully Get Role")
}

func (h *UserHandler) Branches(c *gin.Context) {
	branches, err := h.store.Branches().List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, branches, "Successfully Get Branch")
}

// findUser resolves the :id path parameter, writing the 404 itself so
// callers can just return on error.
func (h *UserHandler) findUser(c *gin.Context) (*models.User, error) {
	id := c.Param("id")
	user, err := h.store.Users().Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(c, http.StatusNotFound, fmt.Sprintf("User with ID %s not found.", id))
		} else {
			respondError(c, err)
		}
		return nil, err
	}
	return user, nil
}
