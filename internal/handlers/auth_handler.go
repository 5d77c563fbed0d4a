package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"bookkeeping-backend/internal/auth"
	"bookkeeping-backend/internal/repository"
)

type AuthHandler struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

func NewAuthHandler(users repository.UserRepository, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login exchanges email+password for a bearer token valid for one hour.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		respondErrorMessage(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"token":   token,
		"expires": int(auth.TokenTTL.Seconds()),
	}, "Success Login")
}
