package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/repositories"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

type FeedService interface {
	Feed(page, pageSize int) (*models.FeedPage, error)
	FeedByUsername(username string, page, pageSize int) (*models.FeedPage, error)
	FeedByCategory(category string, page, pageSize int) (*models.FeedPage, error)
	ProfileFeed(username string) ([]models.ProfileFeedItem, error)
}

type feedService struct {
	pubRepo  repositories.PublicationRepository
	userRepo repositories.UserRepository
}

func NewFeedService(pubRepo repositories.PublicationRepository, userRepo repositories.UserRepository) FeedService {
	return &feedService{pubRepo: pubRepo, userRepo: userRepo}
}

func (s *feedService) Feed(page, pageSize int) (*models.FeedPage, error) {
	page, pageSize = normalize(page, pageSize)
	publications, total, err := s.pubRepo.GetFeed(page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildPage(publications, total, page, pageSize), nil
}

func (s *feedService) FeedByUsername(username string, page, pageSize int) (*models.FeedPage, error) {
	page, pageSize = normalize(page, pageSize)
	publications, total, err := s.pubRepo.GetFeedByUsername(username, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildPage(publications, total, page, pageSize), nil
}

func (s *feedService) FeedByCategory(category string, page, pageSize int) (*models.FeedPage, error) {
	page, pageSize = normalize(page, pageSize)
	publications, total, err := s.pubRepo.GetFeedByCategory(category, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildPage(publications, total, page, pageSize), nil
}

// ProfileFeed lists all of one user's publications without pagination.
func (s *feedService) ProfileFeed(username string) ([]models.ProfileFeedItem, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	publications, err := s.pubRepo.GetByUser(user.ID)
	if err != nil {
		return nil, err
	}

	items := make([]models.ProfileFeedItem, 0, len(publications))
	for i := range publications {
		items = append(items, models.ProfileFeedItem{
			PublicationID: publications[i].ID,
			Content:       publications[i].Content,
			Images:        publications[i].ImageRefs(),
		})
	}
	return items, nil
}

func normalize(page, pageSize int) (int, int) {
	if page < 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func buildPage(publications []models.Publication, total int64, page, pageSize int) *models.FeedPage {
	items := make([]models.FeedItem, 0, len(publications))
	for i := range publications {
		p := &publications[i]
		items = append(items, models.FeedItem{
			PublicationID:    p.ID,
			Content:          p.Content,
			Images:           p.ImageRefs(),
			Username:         p.User.UsernameValue(),
			ProfessionalName: p.User.ProfessionalName,
			ProfilePicture:   p.User.ProfilePicture,
			Category:         p.User.Category,
		})
	}

	return &models.FeedPage{
		FeedItems:     items,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    int(math.Ceil(float64(total) / float64(pageSize))),
		TotalElements: total,
	}
}
