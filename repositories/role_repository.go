package repositories

import (
	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
)

type RoleRepository interface {
	GetByName(name string) (*models.Role, error)
	Ensure(role models.Role) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// GetByName matches case-insensitively; role names are identities, not
// display strings.
func (r *roleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("UPPER(name) = UPPER(?)", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Ensure(role models.Role) error {
	return r.db.Where(models.Role{ID: role.ID}).FirstOrCreate(&role).Error
}
