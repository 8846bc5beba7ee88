package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/repositories"
	"github.com/proa/teiacultural/storage"
)

type UserService interface {
	UpgradeToPremium(targetID uuid.UUID, username string) (*models.User, error)
	DowngradeToBasic(targetID uuid.UUID) (*models.User, error)
	UpdatePremiumDetails(targetID uuid.UUID, update models.PremiumDetailsUpdate) (*models.User, error)
	DeleteUser(targetID uuid.UUID) error
	GetSummaryByUsername(username string) (*models.UserSummary, error)
	ListSummariesByCategory(category string) ([]models.UserSummary, error)
	GetProfileByUsername(username string) (*models.UserProfile, error)
	ListUsers() ([]models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	pubRepo  repositories.PublicationRepository
	store    storage.ObjectStore
	log      *logrus.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	pubRepo repositories.PublicationRepository,
	store storage.ObjectStore,
	log *logrus.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		pubRepo:  pubRepo,
		store:    store,
		log:      log,
	}
}

// UpgradeToPremium moves a basic user to the premium tier and claims the
// requested username. The username's uniqueness is checked against the
// repository first and then enforced by the database constraint, so two
// concurrent upgrades cannot both claim it.
func (s *userService) UpgradeToPremium(targetID uuid.UUID, username string) (*models.User, error) {
	target, err := s.getUser(targetID)
	if err != nil {
		return nil, err
	}

	if !CanUpgrade(target) {
		return nil, models.ErrorForbidden{Message: "cannot upgrade admin user"}
	}

	// Catalog invariant: the premium role must exist. Losing it is an
	// environment defect, not something a caller can fix.
	if _, err := s.roleRepo.GetByName(models.RolePremium); err != nil {
		return nil, models.ErrorInternalServer{Message: "premium role not found"}
	}

	holder, err := s.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !CanSetUsername(target, holder) {
		return nil, models.ErrorConflict{Message: "username already exists"}
	}

	target.Tier = models.TierPremium
	target.Username = &username

	if err := s.userRepo.Update(target); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "username already exists"}
		}
		return nil, err
	}

	return target, nil
}

// DowngradeToBasic returns a premium user to the basic tier. The username
// is released; the remaining professional fields stay in storage, dormant
// until a future re-upgrade.
func (s *userService) DowngradeToBasic(targetID uuid.UUID) (*models.User, error) {
	target, err := s.getUser(targetID)
	if err != nil {
		return nil, err
	}

	if !CanDowngrade(target) {
		return nil, models.ErrorForbidden{Message: "cannot downgrade admin user"}
	}

	if _, err := s.roleRepo.GetByName(models.RoleBasic); err != nil {
		return nil, models.ErrorInternalServer{Message: "basic role not found"}
	}

	target.Tier = models.TierBasic
	target.Username = nil

	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}

	return target, nil
}

// UpdatePremiumDetails applies a partial profile update. Nil fields stay
// untouched. A new profile picture replaces the stored reference; for now
// the previous object is left behind in the bucket.
func (s *userService) UpdatePremiumDetails(targetID uuid.UUID, update models.PremiumDetailsUpdate) (*models.User, error) {
	target, err := s.getUser(targetID)
	if err != nil {
		return nil, err
	}

	if !IsPremium(target) {
		return nil, models.ErrorForbidden{Message: "user does not have the premium tier"}
	}

	if update.ProfessionalName != nil {
		target.ProfessionalName = *update.ProfessionalName
	}
	if update.Category != nil {
		target.Category = *update.Category
	}
	if update.AboutMe != nil {
		target.AboutMe = *update.AboutMe
	}
	if update.SocialMedia != nil {
		target.SocialMedia = *update.SocialMedia
	}
	if update.Localization != nil {
		target.Localization = *update.Localization
	}

	picture := update.ProfilePicture
	if picture != nil && len(picture.Data) > 0 && isValidImageType(picture.ContentType) {
		key := fmt.Sprintf("%s/profile/%s", target.UsernameValue(), uuid.NewString())
		ref, err := s.store.Upload(context.Background(), key, picture.Data, picture.ContentType)
		if err != nil {
			return nil, err
		}
		target.ProfilePicture = ref
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}

	return target, nil
}

// DeleteUser destroys a non-admin account. The record changes (owned
// publications, then the user row) commit in one transaction; the media
// objects collected beforehand are released afterwards, best effort.
// A failed object delete is logged and never rolls back the account
// deletion.
func (s *userService) DeleteUser(targetID uuid.UUID) error {
	target, err := s.getUser(targetID)
	if err != nil {
		return err
	}

	if !CanDeleteUser(target) {
		return models.ErrorForbidden{Message: "cannot delete admin user"}
	}

	publications, err := s.pubRepo.GetByUser(target.ID)
	if err != nil {
		return err
	}

	var refs []string
	for i := range publications {
		refs = append(refs, publications[i].ImageRefs()...)
	}
	if target.ProfilePicture != "" {
		refs = append(refs, target.ProfilePicture)
	}

	if err := s.userRepo.DeleteWithPublications(target); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := s.store.Delete(context.Background(), ref); err != nil {
			s.log.WithError(err).WithField("ref", ref).Warn("failed to release media object")
		}
	}

	// Replaced profile pictures are never deleted eagerly, so sweep the
	// whole username namespace to catch the orphans.
	if username := target.UsernameValue(); username != "" {
		if err := s.store.DeleteByPrefix(context.Background(), username); err != nil {
			s.log.WithError(err).WithField("prefix", username).Warn("failed to sweep media namespace")
		}
	}

	return nil
}

func (s *userService) GetSummaryByUsername(username string) (*models.UserSummary, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	summary := summaryOf(user)
	return &summary, nil
}

func (s *userService) ListSummariesByCategory(category string) ([]models.UserSummary, error) {
	users, err := s.userRepo.GetByCategory(category)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, summaryOf(&users[i]))
	}
	return summaries, nil
}

func (s *userService) GetProfileByUsername(username string) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	return &models.UserProfile{
		Username:         user.UsernameValue(),
		Email:            user.Email,
		Phone:            user.Phone,
		ProfessionalName: user.ProfessionalName,
		Category:         user.Category,
		AboutMe:          user.AboutMe,
		SocialMedia:      user.SocialMedia,
		Localization:     user.Localization,
	}, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) getUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

func summaryOf(user *models.User) models.UserSummary {
	return models.UserSummary{
		ID:               user.ID,
		Username:         user.UsernameValue(),
		Category:         user.Category,
		ProfessionalName: user.ProfessionalName,
	}
}
