package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"travelapi/internal/expiry"
	"travelapi/internal/model"
	"travelapi/internal/repository"
	"travelapi/internal/storage"
)

// ProfileUpdate is a partial update. Nil fields are left unchanged; an empty Phone or
// BirthDate clears the value.
type ProfileUpdate struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// FileUpload is a streamed file from a multipart request.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// ProfileService manages the signed-in user's profile.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, in ProfileUpdate) (*model.Profile, error)
	// UploadAvatar replaces the avatar image and removes the previous object.
	UploadAvatar(ctx context.Context, userID string, file FileUpload) (*model.Profile, error)
}

type profileService struct {
	store  storage.Storage
	repo   repository.ProfileRepository
	clock  Clock
	urlTTL time.Duration
}

// NewProfileService constructs a ProfileService. urlTTL bounds the signed avatar URL.
func NewProfileService(store storage.Storage, repo repository.ProfileRepository, clock Clock, urlTTL time.Duration) ProfileService {
	return &profileService{store: store, repo: repo, clock: clock, urlTTL: urlTTL}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "profile")
	}
	s.withAvatarURL(ctx, p)
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, in ProfileUpdate) (*model.Profile, error) {
	in.FirstName, in.LastName = trimPtr(in.FirstName), trimPtr(in.LastName)
	in.Phone, in.BirthDate = trimPtr(in.Phone), trimPtr(in.BirthDate)

	// empty values clear the column and skip format checks
	check := in
	check.Phone, check.BirthDate = nilIfEmpty(in.Phone), nilIfEmpty(in.BirthDate)
	if err := validateStruct(check); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "profile")
	}

	if in.FirstName != nil {
		p.FirstName = plainText(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = plainText(*in.LastName)
	}
	if in.Phone != nil {
		p.Phone = emptyToNil(*in.Phone)
	}
	if in.BirthDate != nil {
		if *in.BirthDate != "" {
			today := s.clock.Today()
			born, _ := expiry.ParseDate(*in.BirthDate, today.Location())
			if expiry.DaysBetween(today, born) > 0 {
				return nil, invalid("birth_date must not be in the future")
			}
		}
		p.BirthDate = emptyToNil(*in.BirthDate)
	}
	p.UpdatedAt = s.clock.Today().UTC()

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound(err, "profile")
	}
	s.withAvatarURL(ctx, updated)
	return updated, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID string, file FileUpload) (*model.Profile, error) {
	if file.Reader == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, invalid("avatar must be an image")
	}

	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "profile")
	}

	key := storage.NewObjectKey(storage.FolderAvatars, userID, file.Filename)
	obj, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	previous := p.AvatarPath
	p.AvatarPath = &obj.Key
	p.UpdatedAt = s.clock.Today().UTC()

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if previous != nil && *previous != obj.Key {
		// the new avatar is already saved; a leftover object is harmless
		_ = s.store.Delete(ctx, *previous)
	}
	s.withAvatarURL(ctx, updated)
	return updated, nil
}

// withAvatarURL fills AvatarURL when the object can be presigned.
func (s *profileService) withAvatarURL(ctx context.Context, p *model.Profile) {
	if p.AvatarPath == nil || *p.AvatarPath == "" {
		return
	}
	if u, err := s.store.PresignGet(ctx, *p.AvatarPath, s.urlTTL); err == nil {
		p.AvatarURL = u
	}
}

func nilIfEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
