package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wishlist_api/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	// MaxAvatarSize caps uploads at 5MB.
	MaxAvatarSize = 5_000_000

	minStoredNameLen = 10
)

// Image type is decided by magic bytes, never by the client's MIME type.
var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	jpegSOI      = []byte{0xff, 0xd8}
	jpegEOI      = []byte{0xff, 0xd9}
)

// FileService stores user avatars on disk under generated names. Client
// filename hints are slugified before use and never become a path component.
type FileService struct {
	baseDir string
}

func NewFileService(baseDir string) *FileService {
	return &FileService{baseDir: baseDir}
}

type StoredFile struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// SniffImageType detects the image type from content. Returns
// "image/png", "image/jpeg" or "".
func SniffImageType(data []byte) string {
	if bytes.HasPrefix(data, pngSignature) {
		return "image/png"
	}
	if bytes.HasPrefix(data, jpegSOI) && bytes.HasSuffix(data, jpegEOI) {
		return "image/jpeg"
	}
	return ""
}

// SaveAvatar validates and stores an uploaded avatar, returning the stored
// file's metadata. Rejections are validation errors with a "file" field.
func (s *FileService) SaveAvatar(filenameHint string, data []byte) (*StoredFile, error) {
	if len(data) == 0 {
		return nil, common.NewValidationError(common.FieldErrors{"file": "file is empty"})
	}
	if len(data) > MaxAvatarSize {
		return nil, common.NewValidationError(common.FieldErrors{"file": "file exceeds the 5MB limit"})
	}

	imageType := SniffImageType(data)
	if imageType == "" {
		return nil, common.NewValidationError(common.FieldErrors{"file": "only PNG and JPEG images are accepted"})
	}

	ext := ".png"
	if imageType == "image/jpeg" {
		ext = ".jpg"
	}
	name := storedName(filenameHint, ext)

	if err := os.MkdirAll(s.baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	return s.StatAvatar(name)
}

// StatAvatar returns metadata for a stored avatar. Names that could not
// have been produced by SaveAvatar are reported as not found.
func (s *FileService) StatAvatar(filename string) (*StoredFile, error) {
	if !validStoredName(filename) {
		return nil, common.ErrNotFound
	}
	info, err := os.Stat(filepath.Join(s.baseDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat avatar: %w", err)
	}
	return &StoredFile{
		Filename:   info.Name(),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}

func (s *FileService) DeleteAvatar(filename string) error {
	if _, err := s.StatAvatar(filename); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, filename)); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}

// storedName builds "<slug-of-hint>-<uuid><ext>". The uuid guarantees
// uniqueness; the slug keeps the name recognizable without trusting any
// byte of the client's hint.
func storedName(hint, ext string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(hint), filepath.Ext(hint)))
	if base == "" {
		base = "avatar"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return base + "-" + uuid.NewString() + ext
}

func validStoredName(filename string) bool {
	if len(filename) < minStoredNameLen {
		return false
	}
	if filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return false
	}
	return true
}
