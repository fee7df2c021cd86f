package routes

import (
	"errors"
	"movie-store-server/models"
	"movie-store-server/storage"
	"movie-store-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetUserPurchases lists the user's order history, newest first.
func GetUserPurchases(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var purchases []models.Purchase
	if err := storage.DB.Preload("PurchaseItems.Movie").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&purchases).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": purchases})
}

// GetPurchase returns a single receipt. Other users' receipts read as not
// found rather than forbidden.
func GetPurchase(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	purchaseID := ctx.Params().GetUintDefault("id", 0)
	if purchaseID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid purchase ID", ctx)
		return
	}

	var purchase models.Purchase
	err := storage.DB.Preload("PurchaseItems.Movie").First(&purchase, purchaseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateNotFound(ctx)
		return
	}
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if purchase.UserID != userID {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": purchase})
}
