package handler

import (
	"github.com/gofiber/fiber/v2"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// ListNotifications godoc
// @Summary Expiry alerts for the session user
// @Description The optional userId must equal the session user; any other value answers 404.
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param userId query string false "must match the session user"
// @Success 200 {object} service.NotificationList
// @Failure 404 {object} middleware.ErrorResponse
// @Router /notifications [get]
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		if q := c.Query("userId"); q != "" && q != userID {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
		}
		res, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ListReviews godoc
// @Summary Public review feed
// @Tags reviews
// @Produce json
// @Param destination query string false "case-insensitive destination filter"
// @Param limit query int false "page size" default(20)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.ReviewListResult
// @Router /reviews [get]
func ListReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c, 20)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), c.Query("destination"), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateReview godoc
// @Summary Post a review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.ReviewInput true "review"
// @Success 201 {object} model.Review
// @Failure 400 {object} middleware.ErrorResponse
// @Router /reviews [post]
func CreateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReviewInput
		if err := parseJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		rv, err := svc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rv)
	}
}

// ListNotes godoc
// @Summary Calendar notes in a date range
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param from query string false "YYYY-MM-DD, defaults to the first of this month"
// @Param to query string false "YYYY-MM-DD, defaults to the last of this month"
// @Success 200 {object} map[string][]model.Note
// @Router /notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := svc.List(c.UserContext(), middleware.UserID(c), c.Query("from"), c.Query("to"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": notes})
	}
}

// CreateNote godoc
// @Summary Add a calendar note
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.NoteInput true "note"
// @Success 201 {object} model.Note
// @Router /notes [post]
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.NoteInput
		if err := parseJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		n, err := svc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// DeleteNote godoc
// @Summary Delete a calendar note
// @Tags notes
// @Security BearerAuth
// @Param id path string true "note id"
// @Success 204
// @Router /notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// LookupVisa godoc
// @Summary Visa requirement for a passport/destination pair
// @Tags visa
// @Produce json
// @Param from query string true "passport country, ISO alpha-2"
// @Param to query string true "destination country, ISO alpha-2"
// @Success 200 {object} model.VisaRequirement
// @Failure 404 {object} middleware.ErrorResponse
// @Router /visa [get]
func LookupVisa(svc service.VisaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := svc.Lookup(c.UserContext(), c.Query("from"), c.Query("to"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// Upload godoc
// @Summary Store a raw file
// @Tags upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file"
// @Param folder formData string false "documents or avatars"
// @Success 201 {object} service.UploadResult
// @Router /upload [post]
func Upload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closer, err := formFile(c)
		if err != nil {
			return respondError(c, err)
		}
		defer closer.Close()

		res, err := svc.Upload(c.UserContext(), middleware.UserID(c), c.FormValue("folder"), file)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
