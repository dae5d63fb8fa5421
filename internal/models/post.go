package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostType string

const (
	PostTypeDevlog     PostType = "devlog"
	PostTypeReview     PostType = "review"
	PostTypeNews       PostType = "news"
	PostTypeDiscussion PostType = "discussion"
)

// Post is a devlog entry or any other kind of publication written by a user.
// A post may reference one game; the reference is cleared when that game is deleted.
type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	GameID      *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"size:255;not null"`
	BodyContent string     `gorm:"type:text;not null"`
	PostType    PostType   `gorm:"size:20;not null;default:'devlog'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Game     *Game     `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PostType == "" {
		p.PostType = PostTypeDevlog
	}
	return nil
}
