package models

// User is an API operator account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	PasswordHash []byte   `json:"-"`
	RoleID       string   `json:"role_id"`
	RoleName     string   `json:"role_name"`
	IsActive     bool     `json:"is_active"`
	Branches     []string `json:"branches"`
}
