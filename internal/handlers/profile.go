package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
)

// ProfileHandler manages buyer and seller profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the buyer profile, if one exists yet.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var profile models.BuyerProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Profiles are created lazily at first checkout.
			return c.JSON(fiber.Map{"success": true, "data": nil})
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile overwrites buyer profile fields, creating the profile if
// it does not exist yet. Fields are replaced, not merged.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var profile models.BuyerProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		var user models.User
		if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		profile = models.BuyerProfile{
			UserID:  userID,
			Name:    user.DisplayName,
			Email:   user.Email,
			Phone:   req.Phone,
			Address: req.Address,
		}
		if req.Name != "" {
			profile.Name = req.Name
		}
		if req.Email != "" {
			profile.Email = req.Email
		}
		if err := h.db.Create(&profile).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": profile})
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&profile).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}

// GetSellerProfile returns the seller's profile.
func (h *ProfileHandler) GetSellerProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var profile models.SellerProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"success": true, "data": nil})
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}

type updateSellerProfileRequest struct {
	BusinessName string `json:"business_name"`
	ContactPhone string `json:"contact_phone"`
	AvatarURL    string `json:"avatar_url"`
}

// UpdateSellerProfile creates or overwrites the seller profile.
func (h *ProfileHandler) UpdateSellerProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateSellerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var profile models.SellerProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = models.SellerProfile{
			UserID:       userID,
			BusinessName: req.BusinessName,
			ContactPhone: req.ContactPhone,
			AvatarURL:    req.AvatarURL,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": profile})
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.BusinessName != "" {
		updates["business_name"] = req.BusinessName
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&profile).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}
