package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
)

type PublicationRepository interface {
	Create(publication *models.Publication) error
	GetByID(id uint) (*models.Publication, error)
	GetByUser(userID uuid.UUID) ([]models.Publication, error)
	Update(publication *models.Publication) error
	Delete(id uint) error
	// GetFeed pages through all publications, newest first, owner preloaded.
	GetFeed(page, pageSize int) ([]models.Publication, int64, error)
	GetFeedByUsername(username string, page, pageSize int) ([]models.Publication, int64, error)
	GetFeedByCategory(category string, page, pageSize int) ([]models.Publication, int64, error)
}

type publicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(publication *models.Publication) error {
	return r.db.Create(publication).Error
}

func (r *publicationRepository) GetByID(id uint) (*models.Publication, error) {
	var publication models.Publication
	err := r.db.Preload("User").First(&publication, id).Error
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

func (r *publicationRepository) GetByUser(userID uuid.UUID) ([]models.Publication, error) {
	var publications []models.Publication
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&publications).Error
	return publications, err
}

func (r *publicationRepository) Update(publication *models.Publication) error {
	return r.db.Save(publication).Error
}

func (r *publicationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Publication{}, id).Error
}

func (r *publicationRepository) GetFeed(page, pageSize int) ([]models.Publication, int64, error) {
	return r.feedQuery(r.db.Model(&models.Publication{}), page, pageSize)
}

func (r *publicationRepository) GetFeedByUsername(username string, page, pageSize int) ([]models.Publication, int64, error) {
	query := r.db.Model(&models.Publication{}).
		Joins("JOIN users ON users.id = publications.user_id").
		Where("users.username = ?", username)
	return r.feedQuery(query, page, pageSize)
}

func (r *publicationRepository) GetFeedByCategory(category string, page, pageSize int) ([]models.Publication, int64, error) {
	query := r.db.Model(&models.Publication{}).
		Joins("JOIN users ON users.id = publications.user_id").
		Where("users.category LIKE ?", "%"+category+"%")
	return r.feedQuery(query, page, pageSize)
}

func (r *publicationRepository) feedQuery(query *gorm.DB, page, pageSize int) ([]models.Publication, int64, error) {
	var publications []models.Publication
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("publications.created_at desc").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&publications).Error

	return publications, total, err
}
