package services

import (
	"github.com/google/uuid"

	"github.com/proa/teiacultural/models"
)

// Access policy predicates. All of them are pure; callers decide on the
// error kind (Forbidden, Conflict) when a check fails, and must check
// before mutating anything.

// CanUpgrade reports whether the target's tier may be raised. Admin
// accounts are seed-managed and never change tier.
func CanUpgrade(target *models.User) bool {
	return !target.IsAdmin
}

// CanDowngrade reports whether the target's tier may be lowered.
func CanDowngrade(target *models.User) bool {
	return !target.IsAdmin
}

// CanDeleteUser reports whether the target account may be destroyed.
func CanDeleteUser(target *models.User) bool {
	return !target.IsAdmin
}

// CanSetUsername reports whether target may claim a username given the
// user currently holding it (nil when it is free). The match is exact and
// case-sensitive.
func CanSetUsername(target *models.User, holder *models.User) bool {
	return holder == nil || holder.ID == target.ID
}

// CanModifyPublication allows only the owner to change a publication.
func CanModifyPublication(caller *models.User, publication *models.Publication) bool {
	return caller.ID == publication.UserID
}

// CanDeletePublication allows the owner or an admin to destroy it.
func CanDeletePublication(caller *models.User, publication *models.Publication) bool {
	return IsOwnerOrAdmin(caller, publication.UserID)
}

func IsPremium(user *models.User) bool {
	return user.IsPremium()
}

func IsOwnerOrAdmin(caller *models.User, ownerID uuid.UUID) bool {
	return caller.IsAdmin || caller.ID == ownerID
}
