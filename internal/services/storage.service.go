package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"estatehub/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Upload is one image file from a multipart request.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImageStorage stores property images and returns their public URLs.
type ImageStorage interface {
	Upload(ctx context.Context, files []Upload) ([]string, error)
	Remove(ctx context.Context, urls []string) error
}

type StorageService struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     logger.Logger
}

// NewStorageService returns nil when MinIO is not configured.
func NewStorageService(ctx context.Context, config config.Config) (*StorageService, error) {
	log := logger.New("storageService").Function("NewStorageService")

	if config.MinioEndpoint == "" {
		log.Warn("MinIO endpoint not configured, image uploads disabled")
		return nil, nil
	}

	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, log.Err("failed to create minio client", err, "endpoint", config.MinioEndpoint)
	}

	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, log.Err("failed to check bucket", err, "bucket", config.MinioBucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, log.Err("failed to create bucket", err, "bucket", config.MinioBucket)
		}
		log.Info("Bucket created", "bucket", config.MinioBucket)
	}

	baseURL := strings.TrimSuffix(config.MinioPublicURL, "/")
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}

	return &StorageService{
		client:  client,
		bucket:  config.MinioBucket,
		baseURL: baseURL,
		log:     logger.New("storageService"),
	}, nil
}

// Upload stores every file under a random key. On failure the files already
// stored by this call are removed before returning.
func (s *StorageService) Upload(ctx context.Context, files []Upload) ([]string, error) {
	log := s.log.TraceFromContext(ctx).Function("Upload")

	urls := make([]string, 0, len(files))
	for _, file := range files {
		objectKey := ObjectKey(file.Name)

		info, err := s.client.PutObject(ctx, s.bucket, objectKey, file.Reader, file.Size, minio.PutObjectOptions{
			ContentType: file.ContentType,
		})
		if err != nil {
			if removeErr := s.Remove(ctx, urls); removeErr != nil {
				log.Warn("failed to remove partial upload", "error", removeErr)
			}
			return nil, log.Err("failed to upload image", err, "name", file.Name)
		}

		urls = append(urls, s.objectURL(info.Key))
	}

	log.Info("Images uploaded", "count", len(urls))
	return urls, nil
}

func (s *StorageService) Remove(ctx context.Context, urls []string) error {
	log := s.log.TraceFromContext(ctx).Function("Remove")

	var firstErr error
	for _, objectURL := range urls {
		key, ok := s.objectKey(objectURL)
		if !ok {
			log.Warn("url does not belong to bucket", "url", objectURL)
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			log.Er("failed to remove image", err, "key", key)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (s *StorageService) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
}

func (s *StorageService) objectKey(objectURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(objectURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(objectURL, prefix))
	if err != nil {
		return "", false
	}
	return key, true
}

// ObjectKey builds a collision-free key that keeps the original extension.
func ObjectKey(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return path.Join("properties", uuid.New().String()+ext)
}
