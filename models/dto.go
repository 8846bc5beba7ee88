package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required,min=2,max=120"`
	NationalID string `json:"national_id" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpgradeToPremiumRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// MediaUpload is one image read out of a multipart request.
type MediaUpload struct {
	Data        []byte
	ContentType string
}

// PremiumDetailsUpdate is a partial profile update. Nil means "leave the
// field unchanged"; there is no way to clear a field once set, matching
// the original service's contract.
type PremiumDetailsUpdate struct {
	ProfessionalName *string
	Category         *string
	AboutMe          *string
	SocialMedia      *string
	Localization     *string
	ProfilePicture   *MediaUpload
}

// CreatePublicationInput carries the post body and up to four images.
// A nil slot stays empty.
type CreatePublicationInput struct {
	Content string
	Media   [MediaSlots]*MediaUpload
}

// PatchPublicationInput follows the same nil-means-unchanged convention
// as PremiumDetailsUpdate.
type PatchPublicationInput struct {
	Content *string
	Media   [MediaSlots]*MediaUpload
}

type UserSummary struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Category         string    `json:"category"`
	ProfessionalName string    `json:"professional_name"`
}

type UserProfile struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ProfessionalName string `json:"professional_name"`
	Category         string `json:"category"`
	AboutMe          string `json:"about_me"`
	SocialMedia      string `json:"social_media"`
	Localization     string `json:"localization"`
}

type FeedParams struct {
	Page     int `form:"page,default=0"`
	PageSize int `form:"pageSize,default=10"`
}

// FeedItem is a publication projected with a snapshot of its owner's
// public profile.
type FeedItem struct {
	PublicationID    uint     `json:"publication_id"`
	Content          string   `json:"content"`
	Images           []string `json:"images"`
	Username         string   `json:"username"`
	ProfessionalName string   `json:"professional_name"`
	ProfilePicture   string   `json:"profile_picture"`
	Category         string   `json:"category"`
}

type FeedPage struct {
	FeedItems     []FeedItem `json:"feed_items"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
	TotalPages    int        `json:"total_pages"`
	TotalElements int64      `json:"total_elements"`
}

// ProfileFeedItem is the trimmed projection used on a user's own page.
type ProfileFeedItem struct {
	PublicationID uint     `json:"publication_id"`
	Content       string   `json:"content"`
	Images        []string `json:"images"`
}
