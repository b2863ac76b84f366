package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// ListDocuments godoc
// @Summary List documents with derived status
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c, 10)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), middleware.UserID(c), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateDocument godoc
// @Summary Upload a document
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document file"
// @Param title formData string true "title"
// @Param document_type formData string true "Passport, Visa, ID Card, Travel Insurance, Flight Ticket, Hotel Booking or Other"
// @Param expiry_date formData string false "YYYY-MM-DD"
// @Success 201 {object} service.DocumentView
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closer, err := formFile(c)
		if err != nil {
			return respondError(c, err)
		}
		defer closer.Close()

		in := service.DocumentInput{
			Title:        c.FormValue("title"),
			DocumentType: c.FormValue("document_type"),
		}
		if v := c.FormValue("expiry_date"); v != "" {
			in.ExpiryDate = &v
		}

		doc, err := svc.Create(c.UserContext(), middleware.UserID(c), in, file)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} service.DocumentView
// @Failure 404 {object} middleware.ErrorResponse
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument godoc
// @Summary Edit document metadata
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "document id"
// @Param body body service.DocumentPatch true "fields to change"
// @Success 200 {object} service.DocumentView
// @Router /documents/{id} [patch]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch service.DocumentPatch
		if err := parseJSON(c, &patch); err != nil {
			return respondError(c, err)
		}
		doc, err := svc.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// ReplaceDocumentFile godoc
// @Summary Replace the stored file of a document
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "document id"
// @Param file formData file true "new file"
// @Success 200 {object} service.DocumentView
// @Router /documents/{id}/file [put]
func ReplaceDocumentFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closer, err := formFile(c)
		if err != nil {
			return respondError(c, err)
		}
		defer closer.Close()

		doc, err := svc.ReplaceFile(c.UserContext(), middleware.UserID(c), c.Params("id"), file)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument godoc
// @Summary Stream the stored file
// @Tags documents
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 200 {file} binary
// @Router /documents/{id}/file [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, doc, err := svc.Download(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		ct := doc.ContentType
		if ct == "" {
			ct = defaultContentType
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", downloadName(doc.Title, doc.StoragePath)))
		// fasthttp closes rc once the body is written
		return c.SendStream(rc)
	}
}

func downloadName(title, key string) string {
	ext := ""
	if i := strings.LastIndex(key, "."); i > strings.LastIndex(key, "/") {
		ext = key[i:]
	}
	name := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, title)
	if name == "" {
		name = "document"
	}
	return name + ext
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Answers 200 with warnings when cleanup of the calendar event failed.
// @Tags documents
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 204
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		warnings, err := svc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if len(warnings) > 0 {
			return c.JSON(fiber.Map{"warnings": warnings})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentURL godoc
// @Summary Signed download URL
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} service.SignedURL
// @Router /documents/{id}/url [get]
func DocumentURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.SignedURL(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}
