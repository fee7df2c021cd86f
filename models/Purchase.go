package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values mirrored from the gateway at checkout time.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusSucceeded = "Succeeded"
	PaymentStatusFailed    = "Failed"
)

// Purchase is the immutable receipt produced by checkout. Only PaymentStatus
// may change after creation; items never do.
type Purchase struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"userID" gorm:"not null;index"`
	PurchaseDate    time.Time       `json:"purchaseDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(18,2)"`
	PaymentIntentID string          `json:"paymentIntentID" gorm:"size:255;uniqueIndex"`
	PaymentStatus   string          `json:"paymentStatus" gorm:"size:20;default:'Pending'"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	User          User           `json:"-" gorm:"foreignKey:UserID;references:ID"`
	PurchaseItems []PurchaseItem `json:"purchaseItems" gorm:"foreignKey:PurchaseID"`
}

// PurchaseItem snapshots the price the movie sold for, so later catalog price
// changes never rewrite historical receipts.
type PurchaseItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	PurchaseID      uint            `json:"purchaseID" gorm:"not null;index"`
	MovieID         uint            `json:"movieID" gorm:"not null;index"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase" gorm:"type:decimal(18,2)"`
	Quantity        int             `json:"quantity" gorm:"not null;default:1"`

	Movie Movie `json:"movie" gorm:"foreignKey:MovieID;references:ID"`
}
