package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
)

const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge = apperr.Invalid("file", "image must be at most 5 MB")
	ErrImageType     = apperr.Invalid("file", "image must be a JPEG, PNG or WebP file")
	ErrImageEmpty    = apperr.Invalid("file", "image file is empty")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageStore persists quiz cover images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ReadImage buffers at most MaxImageBytes and sniffs the content type.
func ReadImage(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrImageEmpty
	}
	if len(data) > MaxImageBytes {
		return nil, "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		return nil, "", ErrImageType
	}
	return data, ext, nil
}

func (s *LocalImageStore) Save(ctx context.Context, r io.Reader) (string, error) {
	data, ext, err := ReadImage(r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := writeFile(filepath.Join(s.dir, name), data); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

func writeFile(dst string, data []byte) (err error) {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", dst, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// Delete removes a file previously returned by Save. URLs outside the
// store's base URL are ignored.
func (s *LocalImageStore) Delete(ctx context.Context, url string) error {
	if url == "" || !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	name := path.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	if name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
