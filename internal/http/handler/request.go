package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"travelapi/internal/service"
)

const defaultContentType = "application/octet-stream"

// badRequest is a malformed-request error detected by the HTTP layer itself.
type badRequest struct {
	code    string
	message string
}

func (e *badRequest) Error() string { return e.message }

// pageParams reads limit/offset query values. Absent values use the defaults.
func pageParams(c *fiber.Ctx, defLimit int) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defLimit)))
	if err != nil {
		return 0, 0, &badRequest{code: "INVALID_LIMIT", message: "invalid limit"}
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &badRequest{code: "INVALID_OFFSET", message: "invalid offset"}
	}
	return limit, offset, nil
}

// formFile opens the multipart field "file". The caller must close the returned file.
func formFile(c *fiber.Ctx) (service.FileUpload, io.Closer, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.FileUpload{}, nil, &badRequest{code: "FILE_REQUIRED", message: "file is required"}
	}
	f, err := fh.Open()
	if err != nil {
		return service.FileUpload{}, nil, &badRequest{code: "FILE_OPEN_ERROR", message: "cannot open uploaded file"}
	}
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = defaultContentType
	}
	return service.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, f, nil
}

// parseJSON decodes the request body into out.
func parseJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &badRequest{code: "INVALID_BODY", message: "invalid request body"}
	}
	return nil
}
