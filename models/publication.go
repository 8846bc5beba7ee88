package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaSlots is the number of image attachments a publication can carry.
const MediaSlots = 4

type Publication struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Content   string    `json:"content"`
	ImageURL1 *string   `json:"image_url_1"`
	ImageURL2 *string   `json:"image_url_2"`
	ImageURL3 *string   `json:"image_url_3"`
	ImageURL4 *string   `json:"image_url_4"`
	CreatedAt time.Time `json:"created_at"`
}

// SetImage stores a media reference in slot i (0-based).
func (p *Publication) SetImage(i int, ref string) {
	switch i {
	case 0:
		p.ImageURL1 = &ref
	case 1:
		p.ImageURL2 = &ref
	case 2:
		p.ImageURL3 = &ref
	case 3:
		p.ImageURL4 = &ref
	}
}

// ImageRefs returns the non-empty media references in slot order.
func (p *Publication) ImageRefs() []string {
	var refs []string
	for _, slot := range []*string{p.ImageURL1, p.ImageURL2, p.ImageURL3, p.ImageURL4} {
		if slot != nil && *slot != "" {
			refs = append(refs, *slot)
		}
	}
	return refs
}
