package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/solsticegems/solstice-backend/pkg/enums"
)

// MediaAsset captures metadata for uploaded objects.
type MediaAsset struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.MediaKind `gorm:"column:kind;type:media_kind;not null"`
	GCSKey    string          `gorm:"column:gcs_key;not null;unique"`
	URL       *string         `gorm:"column:url"`
	FileName  string          `gorm:"column:file_name;not null"`
	MimeType  string          `gorm:"column:mime_type;not null"`
	SizeBytes int64           `gorm:"column:size_bytes;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
