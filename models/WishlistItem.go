package models

import "time"

type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userID" gorm:"not null;uniqueIndex:uq_wishlist_user_movie"`
	MovieID   uint      `json:"movieID" gorm:"not null;uniqueIndex:uq_wishlist_user_movie"`
	AddedDate time.Time `json:"addedDate"`

	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Movie Movie `json:"movie" gorm:"foreignKey:MovieID;references:ID"`
}
