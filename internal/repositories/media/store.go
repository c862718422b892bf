// Package media stores uploaded listing images on an afero filesystem.
// Production uses the OS filesystem rooted at MEDIA_ROOT, tests use an
// in-memory one.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const DefaultMaxSize = 8 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds maximum size")
	ErrEmpty           = errors.New("empty upload")
	ErrInvalidPath     = errors.New("invalid media path")
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Stored describes a file written by Save.
type Stored struct {
	Path        string
	URL         string
	ContentType string
	Size        int64
}

type Store struct {
	fs      afero.Fs
	baseURL string
	maxSize int64
}

// NewStore roots the store at root on fs. baseURL is the public prefix
// the files are served under, e.g. "/media".
func NewStore(fs afero.Fs, root, baseURL string, maxSize int64) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if root != "" {
		fs = afero.NewBasePathFs(fs, root)
	}
	return &Store{
		fs:      fs,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}
}

func NewOsStore(root, baseURL string, maxSize int64) (*Store, error) {
	if err := afero.NewOsFs().MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return NewStore(afero.NewOsFs(), root, baseURL, maxSize), nil
}

// Save sniffs the content type from the bytes, ignoring any client
// supplied header, and writes the file under properties/<id>/.
func (s *Store) Save(propertyID uint, r io.Reader) (*Stored, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	contentType := sniff(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	dir := path.Join("properties", fmt.Sprint(propertyID))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	rel := path.Join(dir, uuid.NewString()+"."+ext)
	if err := afero.WriteReader(s.fs, rel, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("write media file: %w", err)
	}

	return &Stored{
		Path:        rel,
		URL:         s.URL(rel),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *Store) URL(rel string) string {
	return s.baseURL + "/" + rel
}

// Delete removes a stored file. A missing file is not an error.
func (s *Store) Delete(rel string) error {
	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return ErrInvalidPath
	}
	if err := s.fs.Remove(clean); err != nil {
		exists, statErr := afero.Exists(s.fs, clean)
		if statErr == nil && !exists {
			return nil
		}
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// DeleteProperty removes every file of a listing.
func (s *Store) DeleteProperty(propertyID uint) error {
	return s.fs.RemoveAll(path.Join("properties", fmt.Sprint(propertyID)))
}

func (s *Store) Exists(rel string) bool {
	ok, err := afero.Exists(s.fs, path.Clean(rel))
	return err == nil && ok
}

func sniff(data []byte) string {
	// RIFF container with a WEBP form type.
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
		return "image/webp"
	}
	return http.DetectContentType(data)
}
