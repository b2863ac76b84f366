package handler

import (
	"github.com/gofiber/fiber/v2"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// GetProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Profile
// @Router /profile [get]
func GetProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// UpdateProfile godoc
// @Summary Edit profile fields
// @Description Omitted fields are unchanged; empty phone or birth_date clears them.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.ProfileUpdate true "fields to change"
// @Success 200 {object} model.Profile
// @Failure 400 {object} middleware.ErrorResponse
// @Router /profile [patch]
func UpdateProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileUpdate
		if err := parseJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		p, err := svc.Update(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// UploadAvatar godoc
// @Summary Replace avatar image
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image"
// @Success 200 {object} model.Profile
// @Router /profile/avatar [post]
func UploadAvatar(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closer, err := formFile(c)
		if err != nil {
			return respondError(c, err)
		}
		defer closer.Close()

		p, err := svc.UploadAvatar(c.UserContext(), middleware.UserID(c), file)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}
