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

type PublicationService interface {
	Create(callerID uuid.UUID, input models.CreatePublicationInput) (*models.Publication, error)
	Patch(callerID uuid.UUID, publicationID uint, input models.PatchPublicationInput) (*models.Publication, error)
	Delete(callerID uuid.UUID, publicationID uint) error
}

type publicationService struct {
	userRepo repositories.UserRepository
	pubRepo  repositories.PublicationRepository
	store    storage.ObjectStore
	log      *logrus.Logger
}

func NewPublicationService(
	userRepo repositories.UserRepository,
	pubRepo repositories.PublicationRepository,
	store storage.ObjectStore,
	log *logrus.Logger,
) PublicationService {
	return &publicationService{
		userRepo: userRepo,
		pubRepo:  pubRepo,
		store:    store,
		log:      log,
	}
}

// Create makes a new publication for a premium user. Each provided media
// slot with an accepted content type is uploaded under the owner's
// username namespace; anything else leaves the slot empty.
func (s *publicationService) Create(callerID uuid.UUID, input models.CreatePublicationInput) (*models.Publication, error) {
	caller, err := s.getCaller(callerID)
	if err != nil {
		return nil, err
	}

	if !IsPremium(caller) {
		return nil, models.ErrorForbidden{Message: "only premium users can publish"}
	}

	publication := &models.Publication{
		UserID:  caller.ID,
		Content: input.Content,
	}

	for i, media := range input.Media {
		ref, ok, err := s.uploadSlot(caller, media)
		if err != nil {
			return nil, err
		}
		if ok {
			publication.SetImage(i, ref)
		}
	}

	if err := s.pubRepo.Create(publication); err != nil {
		return nil, err
	}

	return s.pubRepo.GetByID(publication.ID)
}

// Patch overwrites the provided fields of an owned publication. Absent
// fields are left as they are; a replaced image's previous object stays in
// the bucket.
func (s *publicationService) Patch(callerID uuid.UUID, publicationID uint, input models.PatchPublicationInput) (*models.Publication, error) {
	publication, err := s.getPublication(publicationID)
	if err != nil {
		return nil, err
	}

	caller, err := s.getCaller(callerID)
	if err != nil {
		return nil, err
	}

	if !CanModifyPublication(caller, publication) {
		return nil, models.ErrorForbidden{Message: "only the owner can modify a publication"}
	}
	if !IsPremium(caller) {
		return nil, models.ErrorForbidden{Message: "only premium users can publish"}
	}

	if input.Content != nil {
		publication.Content = *input.Content
	}

	for i, media := range input.Media {
		ref, ok, err := s.uploadSlot(caller, media)
		if err != nil {
			return nil, err
		}
		if ok {
			publication.SetImage(i, ref)
		}
	}

	if err := s.pubRepo.Update(publication); err != nil {
		return nil, err
	}

	return publication, nil
}

// Delete removes a publication on behalf of its owner or an admin. The
// row is deleted first; the media objects are released afterwards, best
// effort, with failures logged rather than surfaced.
func (s *publicationService) Delete(callerID uuid.UUID, publicationID uint) error {
	publication, err := s.getPublication(publicationID)
	if err != nil {
		return err
	}

	caller, err := s.getCaller(callerID)
	if err != nil {
		return err
	}

	if !CanDeletePublication(caller, publication) {
		return models.ErrorForbidden{Message: "only the owner or an admin can delete a publication"}
	}

	refs := publication.ImageRefs()

	if err := s.pubRepo.Delete(publication.ID); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := s.store.Delete(context.Background(), ref); err != nil {
			s.log.WithError(err).WithField("ref", ref).Warn("failed to release media object")
		}
	}

	return nil
}

func (s *publicationService) uploadSlot(owner *models.User, media *models.MediaUpload) (string, bool, error) {
	if media == nil || len(media.Data) == 0 || !isValidImageType(media.ContentType) {
		return "", false, nil
	}

	key := fmt.Sprintf("%s/publications/%s", owner.UsernameValue(), uuid.NewString())
	ref, err := s.store.Upload(context.Background(), key, media.Data, media.ContentType)
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

func (s *publicationService) getCaller(id uuid.UUID) (*models.User, error) {
	caller, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return caller, nil
}

func (s *publicationService) getPublication(id uint) (*models.Publication, error) {
	publication, err := s.pubRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "publication not found"}
		}
		return nil, err
	}
	return publication, nil
}
