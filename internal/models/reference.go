package models

// Role and Branch are static reference collections, read-only from the API.

type Role struct {
	ID   string `gorm:"primaryKey" json:"role_id"`
	Name string `json:"role_name"`
}

type Branch struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}
