package config

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/repositories"
)

// Seed guarantees the role catalog and the bootstrap admin account. A
// catalog that cannot be established is a fatal startup condition; none of
// the lifecycle operations are safe without it.
func Seed(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository, log *logrus.Logger) {
	for _, role := range models.SeedRoles() {
		if err := roleRepo.Ensure(role); err != nil {
			log.WithError(err).WithField("role", role.Name).Fatal("failed to seed role")
		}
	}

	// Re-read the catalog; a missing role here means the seed silently
	// failed and every tier transition would break at request time.
	for _, name := range []string{models.RoleAdmin, models.RolePremium, models.RoleBasic} {
		if _, err := roleRepo.GetByName(name); err != nil {
			log.WithError(err).WithField("role", name).Fatal("role catalog incomplete after seeding")
		}
	}

	seedAdmin(userRepo, log)
}

func seedAdmin(userRepo repositories.UserRepository, log *logrus.Logger) {
	email := envOr("ADMIN_EMAIL", "admin@teiacultural.com")

	if _, err := userRepo.GetByEmail(email); err == nil {
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Fatal("failed to look up admin user")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash admin password")
	}

	admin := &models.User{
		Email:      email,
		Password:   string(hashed),
		Name:       "Administrator",
		NationalID: envOr("ADMIN_NATIONAL_ID", "00000000000"),
		Phone:      envOr("ADMIN_PHONE", "0000000000"),
		Tier:       models.TierBasic,
		IsAdmin:    true,
	}

	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Fatal("failed to create admin user")
	}
	log.WithField("email", email).Info("admin user created")
}
