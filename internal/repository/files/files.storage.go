// FilePath: internal/repository/files/files.storage.go
package files

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// ImageStore keeps uploaded ticket images on the local filesystem and hands
// out URLs under the configured public path.
type ImageStore struct {
	basePath   string
	publicPath string
	maxSize    int64
}

// NewImageStore creates the blob store and its base directory.
func NewImageStore(cfg config.FileStoreConfig) (repository.ImageRepository, error) {
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, errors.NewInternalError("failed to create image store directory", err)
	}
	nuts.L.Infof("[ImageStore] Storing images under %s", cfg.BasePath)
	return &ImageStore{
		basePath:   cfg.BasePath,
		publicPath: strings.TrimRight(cfg.PublicPath, "/"),
		maxSize:    cfg.MaxImageSize,
	}, nil
}

func (s *ImageStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", errors.NewValidationError(
			fmt.Sprintf("image exceeds maximum allowed size of %d bytes", s.maxSize), nil)
	}

	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewUpstreamError("failed to store image", err)
	}

	return s.publicPath + "/" + name, nil
}

func (s *ImageStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if err := validateName(name); err != nil {
		return nil, "", err
	}

	f, err := os.Open(filepath.Join(s.basePath, name))
	if os.IsNotExist(err) {
		return nil, "", repository.ErrNotFound
	}
	if err != nil {
		return nil, "", errors.NewUpstreamError("failed to open image", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return f, mimeType, nil
}

// validateName rejects anything that could escape the store directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return errors.NewValidationError("invalid image name", nil)
	}
	return nil
}
