package models

// Role is a catalog entry with a stable identity. The three roles are
// seeded once at startup and never mutated afterwards; their IDs are the
// ones the original deployment shipped with and must not change.
type Role struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

const (
	RoleAdmin   = "ADMIN"
	RolePremium = "PREMIUM"
	RoleBasic   = "BASIC"
)

const (
	RoleIDAdmin   uint = 1
	RoleIDPremium uint = 2
	RoleIDBasic   uint = 3
)

// SeedRoles is the full catalog in seed order.
func SeedRoles() []Role {
	return []Role{
		{ID: RoleIDAdmin, Name: RoleAdmin},
		{ID: RoleIDPremium, Name: RolePremium},
		{ID: RoleIDBasic, Name: RoleBasic},
	}
}
