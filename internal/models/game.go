package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameStatus is the development stage of a game.
type GameStatus string

const (
	GameStatusInDevelopment GameStatus = "in-development"
	GameStatusReleased      GameStatus = "released"
	GameStatusBeta          GameStatus = "beta"
	GameStatusCancelled     GameStatus = "cancelled"
)

// Game represents a game catalogued by its owner.
type Game struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"size:100;not null"`
	Description string     `gorm:"type:text;not null"`
	Genre       string     `gorm:"size:50"`
	Status      GameStatus `gorm:"size:20;not null;default:'in-development'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GameStatusInDevelopment
	}
	return nil
}
