package models

import (
	"time"

	"gorm.io/gorm"
)

type Actor struct {
	gorm.Model
	Name        string    `json:"name" gorm:"not null;size:100;index"`
	Bio         string    `json:"bio" gorm:"type:text"`
	DateOfBirth time.Time `json:"dateOfBirth" gorm:"type:date"`
	ImageURL    string    `json:"imageURL" gorm:"size:255"`

	MovieActors []MovieActor `json:"movieActors,omitempty" gorm:"foreignKey:ActorID"`
}
