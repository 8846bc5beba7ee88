package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tier is a user's content-creation level. Every user holds exactly one
// tier; the admin flag is orthogonal and only ever set by seeding.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	Name       string    `json:"name" gorm:"not null"`
	NationalID string    `json:"national_id" gorm:"uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"not null"`
	Tier       Tier      `json:"tier" gorm:"type:varchar(16);not null;default:'basic'"`
	IsAdmin    bool      `json:"is_admin" gorm:"not null;default:false"`

	// Premium-only fields. Username is non-nil iff the tier is premium;
	// the rest stay dormant across a downgrade.
	Username         *string `json:"username" gorm:"uniqueIndex"`
	ProfilePicture   string  `json:"profile_picture"`
	ProfessionalName string  `json:"professional_name"`
	Category         string  `json:"category"`
	AboutMe          string  `json:"about_me"`
	SocialMedia      string  `json:"social_media"`
	Localization     string  `json:"localization"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsPremium() bool {
	return u.Tier == TierPremium
}

// UsernameValue returns the username or "" when none is set.
func (u *User) UsernameValue() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}
