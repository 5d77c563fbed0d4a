package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookkeeping-backend/internal/repository"
)

type HomeHandler struct {
	users repository.UserRepository
}

func NewHomeHandler(users repository.UserRepository) *HomeHandler {
	return &HomeHandler{users: users}
}

// menus is the static navigation payload served to every role.
var menus = []gin.H{
	{"menu_id": "menu-1", "menu_name": "Dashboard", "path": "/dashboard"},
	{"menu_id": "menu-2", "menu_name": "Transactions", "path": "/transactions"},
	{"menu_id": "menu-3", "menu_name": "Omzet", "path": "/omzet"},
	{"menu_id": "menu-4", "menu_name": "Users Managment", "path": "/users"},
}

// Home returns the dashboard payload for the authenticated user.
func (h *HomeHandler) Home(c *gin.Context) {
	user, err := h.users.FindByEmail(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondErrorMessage(c, http.StatusNotFound, "User not found", "")
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"user": gin.H{
			"user_id":   user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"email":     user.Email,
			"role": gin.H{
				"role_id":     user.RoleID,
				"role_name":   user.RoleName,
				"menus":       menus,
				"role_access": []string{"C", "R", "U", "D"},
			},
		},
	}, "Success Login")
}
