package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"pickaside/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files (avatars, resumes) land.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// NewStorageProvider picks MinIO when an endpoint is configured and falls back
// to local disk otherwise.
func NewStorageProvider(cfg *config.Config) StorageProvider {
	if cfg.MinioEndpoint != "" {
		p, err := NewMinioProvider(cfg)
		if err == nil {
			return p
		}
		slog.Warn("minio unavailable, falling back to local storage", "error", err)
	}
	dir := cfg.UploadDir
	if dir == "" {
		dir = "./uploads"
	}
	return &LocalProvider{Dir: dir}
}

// LocalProvider stores uploads on the local filesystem.
type LocalProvider struct {
	Dir string
}

func (p *LocalProvider) Upload(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	dst := filepath.Join(p.Dir, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *LocalProvider) Delete(_ context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Dir, filename))
}

func (p *LocalProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

// MinioProvider stores uploads in a MinIO (S3-compatible) bucket.
type MinioProvider struct {
	client *minio.Client
	bucket string
	base   string
}

// NewMinioProvider connects to the configured MinIO endpoint.
func NewMinioProvider(cfg *config.Config) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return &MinioProvider{
		client: client,
		bucket: cfg.MinioBucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioProvider) Delete(ctx context.Context, filename string) error {
	return p.client.RemoveObject(ctx, p.bucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioProvider) GetURL(filename string) string {
	return p.base + "/" + filename
}
