package models

import "time"

// CartItem is a per-user, per-movie pending purchase. A user never holds two
// rows for the same movie; repeat adds bump Quantity instead. Rows are hard
// deleted so the (user, movie) unique index stays reusable after checkout.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userID" gorm:"not null;uniqueIndex:uq_cart_user_movie"`
	MovieID   uint      `json:"movieID" gorm:"not null;uniqueIndex:uq_cart_user_movie"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1;check:quantity >= 1"`
	AddedDate time.Time `json:"addedDate"`

	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Movie Movie `json:"movie" gorm:"foreignKey:MovieID;references:ID"`
}
