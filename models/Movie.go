package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Movie struct {
	gorm.Model
	Title           string          `json:"title" gorm:"not null;size:100;index"`
	Description     string          `json:"description" gorm:"type:text"`
	Genre           string          `json:"genre" gorm:"size:100;index"`
	Director        string          `json:"director" gorm:"size:100"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(18,2)"`
	Rating          float64         `json:"rating"` // derived from reviews, kept to one decimal
	ReleaseDate     time.Time       `json:"releaseDate" gorm:"type:date;index"`
	DurationMinutes int             `json:"durationMinutes"`
	ImageURL        string          `json:"imageURL" gorm:"size:255"`
	VideoURL        string          `json:"videoURL" gorm:"size:255"`

	Reviews     []Review     `json:"reviews,omitempty" gorm:"foreignKey:MovieID"`
	MovieActors []MovieActor `json:"movieActors,omitempty" gorm:"foreignKey:MovieID"`
}
