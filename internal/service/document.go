package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelapi/internal/calendar"
	"travelapi/internal/expiry"
	"travelapi/internal/model"
	"travelapi/internal/repository"
	"travelapi/internal/storage"
)

// DocumentInput is the metadata sent alongside a new document file.
type DocumentInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	DocumentType string  `json:"document_type" validate:"required,doctype"`
	ExpiryDate   *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// DocumentPatch edits metadata. Nil fields are unchanged; an empty ExpiryDate clears it.
type DocumentPatch struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	DocumentType *string `json:"document_type" validate:"omitempty,doctype"`
	ExpiryDate   *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// DocumentView is a document with its derived status. Warnings report side effects
// (calendar sync, object cleanup) that failed without failing the request.
type DocumentView struct {
	model.Document
	Status   model.DocumentStatus `json:"status"`
	Warnings []string             `json:"warnings,omitempty"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []DocumentView `json:"data"`
	Total int            `json:"total"`
}

// SignedURL is a time-limited download link.
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentService defines the use cases for handling a user's travel documents.
type DocumentService interface {
	// Create uploads the file, saves metadata to DB, and rolls back storage if DB save fails.
	// The stored object name is a UUID plus the original extension.
	Create(ctx context.Context, userID string, in DocumentInput, file FileUpload) (*DocumentView, error)

	// List returns the user's documents using limit/offset and a total count.
	List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error)

	Get(ctx context.Context, userID, id string) (*DocumentView, error)

	// Update edits title, type or expiry date and keeps the calendar event in step.
	Update(ctx context.Context, userID, id string, patch DocumentPatch) (*DocumentView, error)

	// ReplaceFile uploads a new object for the document and removes the old one.
	ReplaceFile(ctx context.Context, userID, id string, file FileUpload) (*DocumentView, error)

	// Delete removes the object, the row and the calendar event. Failures after the
	// row is gone come back as warnings.
	Delete(ctx context.Context, userID, id string) ([]string, error)

	SignedURL(ctx context.Context, userID, id string) (*SignedURL, error)

	// Download streams the stored file. The caller closes the reader.
	Download(ctx context.Context, userID, id string) (io.ReadCloser, *model.Document, error)
}

type documentService struct {
	store  storage.Storage
	repo   repository.DocumentRepository
	cal    calendar.Client
	clock  Clock
	urlTTL time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, cal calendar.Client, clock Clock, urlTTL time.Duration) DocumentService {
	if cal == nil {
		cal = calendar.Noop{}
	}
	return &documentService{store: store, repo: repo, cal: cal, clock: clock, urlTTL: urlTTL}
}

func (s *documentService) view(doc *model.Document, warnings ...string) *DocumentView {
	return &DocumentView{
		Document: *doc,
		Status:   expiry.Classify(s.clock.Today(), doc.ExpiryDate, doc.DocumentType),
		Warnings: warnings,
	}
}

func (s *documentService) upload(ctx context.Context, userID string, file FileUpload) (storage.ObjectInfo, error) {
	if file.Reader == nil {
		return storage.ObjectInfo{}, ErrReaderNil
	}
	key := storage.NewObjectKey(storage.FolderDocuments, userID, file.Filename)
	obj, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Filename},
	})
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("upload to storage: %w", err)
	}
	if obj.ContentType == "" {
		obj.ContentType = file.ContentType
	}
	return obj, nil
}

func (s *documentService) Create(ctx context.Context, userID string, in DocumentInput, file FileUpload) (*DocumentView, error) {
	in.Title = plainText(in.Title)
	in.DocumentType = strings.TrimSpace(in.DocumentType)
	in.ExpiryDate = nilIfEmpty(trimPtr(in.ExpiryDate))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	obj, err := s.upload(ctx, userID, file)
	if err != nil {
		return nil, err
	}

	now := s.clock.Today().UTC()
	doc := &model.Document{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        in.Title,
		DocumentType: in.DocumentType,
		ExpiryDate:   in.ExpiryDate,
		StoragePath:  obj.Key,
		ContentType:  obj.ContentType,
		Size:         obj.Size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	stored, warnings := s.syncCalendar(ctx, stored)
	return s.view(stored, warnings...), nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]DocumentView, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, *s.view(&res.Items[i]))
	}
	return &DocumentListResult{Items: items, Total: res.Total}, nil
}

func (s *documentService) find(ctx context.Context, userID, id string) (*model.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("document %w", ErrNotFound)
	}
	doc, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, userID, id string) (*DocumentView, error) {
	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.view(doc), nil
}

func (s *documentService) Update(ctx context.Context, userID, id string, patch DocumentPatch) (*DocumentView, error) {
	if patch.Title != nil {
		t := plainText(*patch.Title)
		patch.Title = &t
	}
	patch.DocumentType = trimPtr(patch.DocumentType)
	patch.ExpiryDate = trimPtr(patch.ExpiryDate)

	check := patch
	check.ExpiryDate = nilIfEmpty(patch.ExpiryDate)
	if err := validateStruct(check); err != nil {
		return nil, err
	}

	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	dateChanged := false
	titleChanged := false
	if patch.Title != nil && *patch.Title != doc.Title {
		doc.Title = *patch.Title
		titleChanged = true
	}
	if patch.DocumentType != nil {
		doc.DocumentType = *patch.DocumentType
	}
	if patch.ExpiryDate != nil {
		next := emptyToNil(*patch.ExpiryDate)
		dateChanged = !equalPtr(doc.ExpiryDate, next)
		doc.ExpiryDate = next
	}
	doc.UpdatedAt = s.clock.Today().UTC()

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		return nil, notFound(err, "document")
	}

	var warnings []string
	if dateChanged || titleChanged {
		updated, warnings = s.syncCalendar(ctx, updated)
	}
	return s.view(updated, warnings...), nil
}

func (s *documentService) ReplaceFile(ctx context.Context, userID, id string, file FileUpload) (*DocumentView, error) {
	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	obj, err := s.upload(ctx, userID, file)
	if err != nil {
		return nil, err
	}

	oldKey := doc.StoragePath
	doc.StoragePath = obj.Key
	doc.ContentType = obj.ContentType
	doc.Size = obj.Size
	doc.UpdatedAt = s.clock.Today().UTC()

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", notFound(err, "document"))
	}

	var warnings []string
	if oldKey != "" && oldKey != obj.Key {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			warnings = append(warnings, fmt.Sprintf("previous file was not removed: %v", err))
		}
	}
	return s.view(updated, warnings...), nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, userID, id string) ([]string, error) {
	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	// Delete from storage first; if this fails, keep the row so the object stays reachable.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return nil, fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return nil, notFound(err, "document")
	}

	var warnings []string
	if doc.CalendarEventID != nil && s.cal.Enabled() {
		if err := s.cal.DeleteEvent(ctx, *doc.CalendarEventID); err != nil {
			warnings = append(warnings, fmt.Sprintf("calendar event was not removed: %v", err))
		}
	}
	return warnings, nil
}

func (s *documentService) SignedURL(ctx context.Context, userID, id string) (*SignedURL, error) {
	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	issued := s.clock.Today().UTC()
	u, err := s.store.PresignGet(ctx, doc.StoragePath, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}
	return &SignedURL{URL: u, ExpiresAt: issued.Add(s.urlTTL)}, nil
}

func (s *documentService) Download(ctx context.Context, userID, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, fmt.Errorf("document file %w", ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return rc, doc, nil
}

// syncCalendar upserts or removes the document's expiry event. Provider failures are
// returned as warnings and leave the stored event id untouched.
func (s *documentService) syncCalendar(ctx context.Context, doc *model.Document) (*model.Document, []string) {
	if !s.cal.Enabled() {
		return doc, nil
	}

	var (
		eventID *string
		err     error
	)
	switch {
	case doc.ExpiryDate != nil:
		id := calendar.EventID(doc.ID)
		err = s.cal.UpsertAllDayEvent(ctx, calendar.Event{
			ID:          id,
			Title:       doc.Title + " expires",
			Description: fmt.Sprintf("%s expires on %s.", doc.DocumentType, *doc.ExpiryDate),
			Date:        *doc.ExpiryDate,
		})
		eventID = &id
	case doc.CalendarEventID != nil:
		err = s.cal.DeleteEvent(ctx, *doc.CalendarEventID)
	default:
		return doc, nil
	}
	if err != nil {
		return doc, []string{fmt.Sprintf("calendar sync failed: %v", err)}
	}
	if equalPtr(doc.CalendarEventID, eventID) {
		return doc, nil
	}

	doc.CalendarEventID = eventID
	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		return doc, []string{fmt.Sprintf("calendar event id was not saved: %v", err)}
	}
	return updated, nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
