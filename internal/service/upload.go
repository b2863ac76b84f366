package service

import (
	"context"
	"errors"
	"fmt"

	"travelapi/internal/storage"
)

// UploadResult is the storage path of an uploaded file.
type UploadResult struct {
	Path string `json:"path"`
}

// UploadService stores raw files under the caller's prefix.
type UploadService interface {
	Upload(ctx context.Context, userID, folder string, file FileUpload) (*UploadResult, error)
}

type uploadService struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) Upload(ctx context.Context, userID, folder string, file FileUpload) (*UploadResult, error) {
	if file.Reader == nil {
		return nil, ErrReaderNil
	}
	f, err := storage.ParseFolder(folder)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFolder) {
			return nil, invalid("folder must be one of %s, %s", storage.FolderDocuments, storage.FolderAvatars)
		}
		return nil, err
	}

	key := storage.NewObjectKey(f, userID, file.Filename)
	obj, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	return &UploadResult{Path: obj.Key}, nil
}
