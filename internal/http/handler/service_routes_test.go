package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelapi/internal/calendar"
	"travelapi/internal/model"
	repoMocks "travelapi/internal/repository/mocks"
	"travelapi/internal/service"
	serviceMocks "travelapi/internal/service/mocks"
	"travelapi/internal/storage"
	storeMocks "travelapi/internal/storage/mocks"
)

func fixedClock() service.Clock {
	return service.Clock{
		Now:      func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func TestCreateDocument_RealService(t *testing.T) {
	store := new(storeMocks.MockStorage)
	docs := new(repoMocks.MockDocumentRepository)

	app, _ := newTestApp(t, Options{}, func(s *Services) {
		s.Documents = service.NewDocumentService(store, docs, calendar.Noop{}, fixedClock(), time.Minute)
	})

	t.Run("stores file and row", func(t *testing.T) {
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(func(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
			}, nil).Once()
		docs.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Document) bool {
			return d.UserID == testUser && d.ExpiryDate != nil && *d.ExpiryDate == "2024-06-29"
		})).Return(func(d *model.Document) *model.Document { return d }, nil).Once()

		fields := map[string]string{"title": "Passport", "document_type": "Passport", "expiry_date": "2024-06-29"}
		resp, err := app.Test(authed(multipartRequest(t, http.MethodPost, "/documents", fields, "passport.pdf", "%PDF-1.4")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body service.DocumentView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Passport", body.Title)
		assert.Equal(t, model.StatusExpiring, body.Status)
	})

	t.Run("malformed expiry date", func(t *testing.T) {
		fields := map[string]string{"title": "Passport", "document_type": "Passport", "expiry_date": "29/06/2024"}
		resp, err := app.Test(authed(multipartRequest(t, http.MethodPost, "/documents", fields, "passport.pdf", "%PDF-1.4")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Code)
	})

	store.AssertExpectations(t)
	docs.AssertExpectations(t)
}

func TestCreateNote_RealService(t *testing.T) {
	notes := new(repoMocks.MockNoteRepository)

	app, _ := newTestApp(t, Options{}, func(s *Services) {
		s.Notes = service.NewNoteService(notes, fixedClock())
	})

	t.Run("created", func(t *testing.T) {
		notes.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Note) bool {
			return n.UserID == testUser && n.Date == "2024-06-29"
		})).Return(func(n *model.Note) *model.Note { return n }, nil).Once()

		resp, err := app.Test(authed(jsonRequest(t, http.MethodPost, "/notes", map[string]string{"date": "2024-06-29", "text": "Renew passport"})))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body model.Note
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Renew passport", body.Text)
	})

	t.Run("bad date", func(t *testing.T) {
		resp, err := app.Test(authed(jsonRequest(t, http.MethodPost, "/notes", map[string]string{"date": "June 29", "text": "Renew passport"})))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Code)
	})

	notes.AssertExpectations(t)
}

func TestRecoverMiddleware(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(authed(jsonRequest(t, http.MethodGet, "/boom", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Code)
}

func TestRequireAuth_SessionStoreDown(t *testing.T) {
	authSvc := new(serviceMocks.MockAuthService)
	authSvc.On("Authenticate", mock.Anything, testToken).
		Return("", errors.New("check revocation: redis: connection refused")).Once()

	app, _ := newTestApp(t, Options{}, func(s *Services) { s.Auth = authSvc })

	resp, err := app.Test(authed(httptest.NewRequest(http.MethodGet, "/notifications", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Error, "redis")
	authSvc.AssertExpectations(t)
}
