package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/AnuragSingh2101/backend/pkg/config"
)

// MinioStorage implements Service on a MinIO (or S3-compatible) server.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       zerolog.Logger
}

// NewMinioStorage creates the client and makes sure the bucket exists.
func NewMinioStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: cfg.MinioPublicURL,
		log:       log,
	}, nil
}

// Upload stores the local file under a fresh object id and removes the local
// temporary copy. Duration is probed for video assets; for images the probe
// reports nothing and the duration stays zero.
func (s *MinioStorage) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, fmt.Errorf("local file path is empty")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			s.log.Warn().Err(err).Str("path", localPath).Msg("failed to remove temporary file")
		}
	}()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := uuid.NewString()
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	return &Asset{
		URL:      fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName),
		PublicID: objectName,
		Duration: probeDuration(localPath),
	}, nil
}

// Delete removes the object identified by publicID.
func (s *MinioStorage) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public id is empty")
	}
	return s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
}

func probeDuration(path string) float64 {
	data, err := ffmpeg.Probe(path)
	if err != nil {
		return 0
	}
	return gjson.Get(data, "format.duration").Float()
}
