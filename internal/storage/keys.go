package storage

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Folder is a top-level prefix objects are grouped under.
type Folder string

const (
	FolderDocuments Folder = "documents"
	FolderAvatars   Folder = "avatars"
)

// ErrInvalidFolder is returned for folders other than the ones declared above.
var ErrInvalidFolder = errors.New("invalid storage folder")

// ParseFolder validates a user-supplied folder name. An empty name means documents.
func ParseFolder(s string) (Folder, error) {
	switch Folder(strings.ToLower(strings.TrimSpace(s))) {
	case "", FolderDocuments:
		return FolderDocuments, nil
	case FolderAvatars:
		return FolderAvatars, nil
	default:
		return "", ErrInvalidFolder
	}
}

// NewObjectKey builds "<folder>/<owner>/<uuid><ext>". Only the extension of the
// original filename survives, lower-cased.
func NewObjectKey(folder Folder, ownerID, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	return path.Join(string(folder), ownerID, uuid.NewString()+ext)
}

// OwnedBy reports whether key lives under the owner's prefix in any folder.
func OwnedBy(key, ownerID string) bool {
	parts := strings.SplitN(key, "/", 3)
	return len(parts) == 3 && parts[1] == ownerID && parts[2] != ""
}
