package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/solsticegems/solstice-backend/pkg/config"
	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/storage/gcs"
)

var allowedImageMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type mediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) (*models.MediaAsset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UploadInput is one image arriving through a multipart admin request.
type UploadInput struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Body      io.Reader
}

// Service stores product images in GCS and records their metadata.
type Service interface {
	UploadImage(ctx context.Context, input UploadInput) (*models.MediaAsset, error)
	Remove(ctx context.Context, id uuid.UUID) error
	DisplayURL(gcsKey string) string
}

type service struct {
	repo     mediaRepository
	uploader gcs.Uploader
	maxBytes int64
	logg     *logger.Logger
}

func NewService(repo mediaRepository, uploader gcs.Uploader, cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if uploader == nil {
		return nil, fmt.Errorf("gcs uploader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{repo: repo, uploader: uploader, maxBytes: maxBytes, logg: logg}, nil
}

// UploadImage validates the file, streams it to object storage and records
// the asset. The stored key is always server-generated; the original file
// name survives only as metadata.
func (s *service) UploadImage(ctx context.Context, input UploadInput) (*models.MediaAsset, error) {
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name required")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body required")
	}
	if input.SizeBytes <= 0 || input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file size must be between 1 byte and %d bytes", s.maxBytes))
	}

	mimeType, err := normalizeMimeType(input.MimeType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid mime type")
	}
	ext, ok := allowedImageMimeTypes[mimeType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only JPEG, PNG and WebP images are accepted")
	}

	key := objectKey(ext)
	if err := s.uploader.Upload(ctx, key, mimeType, io.LimitReader(input.Body, s.maxBytes)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image")
	}

	url := s.uploader.ObjectURL(key)
	asset := &models.MediaAsset{
		Kind:      enums.MediaKindProductImage,
		GCSKey:    key,
		URL:       &url,
		FileName:  sanitizeFileName(fileName),
		MimeType:  mimeType,
		SizeBytes: input.SizeBytes,
	}
	created, err := s.repo.Create(ctx, asset)
	if err != nil {
		// best-effort: don't leave an orphaned object behind the failed row
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logg.Error(ctx, "failed to clean up orphaned upload", delErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record media asset")
	}
	return created, nil
}

// Remove deletes the stored object and its metadata row. Both deletions are
// attempted even when one fails, so a missing object never strands the row.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "media asset not found")
	}
	var errs error
	if err := s.uploader.Delete(ctx, asset.GCSKey); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete stored object: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete media record: %w", err))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "remove media asset")
	}
	return nil
}

// DisplayURL resolves a stored key to its public URL.
func (s *service) DisplayURL(gcsKey string) string {
	if gcsKey == "" {
		return ""
	}
	return s.uploader.ObjectURL(gcsKey)
}

func objectKey(ext string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("products/%s/%s%s", now.Format("2006/01"), uuid.NewString(), ext)
}

func normalizeMimeType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("mime type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", err
	}
	return strings.ToLower(mediaType), nil
}

func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
