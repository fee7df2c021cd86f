package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	UserID     uint      `json:"userID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MovieID    uint      `json:"movieID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User       User      `json:"user" gorm:"foreignKey:UserID"`
	Movie      Movie     `json:"-" gorm:"foreignKey:MovieID"`
	Content    string    `json:"content" gorm:"type:text"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ReviewDate time.Time `json:"reviewDate"`
}
