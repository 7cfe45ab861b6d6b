package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reportdesk/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileDelivery hands a finished artifact to its destination. The
// orchestrator only ever sees this interface, so the delivery mechanism
// is swappable and testable without a real sink.
type FileDelivery interface {
	Deliver(ctx context.Context, content []byte, filename string, mimeType string) error
}

// BufferDelivery captures the artifact in memory. The HTTP export
// endpoint uses it to relay the file as an attachment, tests use it as a
// recording fake.
type BufferDelivery struct {
	Content  []byte
	Filename string
	MimeType string
}

func (d *BufferDelivery) Deliver(ctx context.Context, content []byte, filename string, mimeType string) error {
	d.Content = content
	d.Filename = filename
	d.MimeType = mimeType
	return nil
}

// DirDelivery writes the artifact into a local directory
type DirDelivery struct {
	Dir string
}

func NewDirDelivery(cfg *config.Config) *DirDelivery {
	return &DirDelivery{Dir: cfg.ExportDir}
}

func (d *DirDelivery) Deliver(ctx context.Context, content []byte, filename string, mimeType string) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(d.Dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// MinioDelivery uploads the artifact to an object storage bucket
type MinioDelivery struct {
	Client *minio.Client
	Bucket string
}

func NewMinioDelivery(cfg *config.Config) (*MinioDelivery, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioDelivery{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (d *MinioDelivery) Deliver(ctx context.Context, content []byte, filename string, mimeType string) error {
	reader := bytes.NewReader(content)
	_, err := d.Client.PutObject(ctx, d.Bucket, filename, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return fmt.Errorf("upload export to bucket %s: %w", d.Bucket, err)
	}
	return nil
}

// NewFileDelivery picks the configured sink for non-HTTP exports
func NewFileDelivery(cfg *config.Config) (FileDelivery, error) {
	switch cfg.ExportDelivery {
	case "minio":
		return NewMinioDelivery(cfg)
	case "dir", "http":
		// The http mode still needs a fallback sink for non-request
		// contexts, a local directory serves both.
		return NewDirDelivery(cfg), nil
	default:
		return nil, fmt.Errorf("unknown export delivery mode: %s", cfg.ExportDelivery)
	}
}
