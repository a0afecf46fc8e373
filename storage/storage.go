package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("storage: object not found")

type StorageAPI interface {
	Save(ctx context.Context, path string, reader io.Reader, mimeType string) (int64, error)
	Load(ctx context.Context, path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(ctx context.Context, path string) error
	URL(path string) string
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

type Storage struct {
	Bucket Bucket
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

// publicURL joins the configured prefix with the object path, empty when no prefix is set
func (s *Storage) publicURL(path string) string {
	if s.Bucket.URLPrefix == "" {
		return ""
	}
	return s.Bucket.URLPrefix + "/" + path
}

var defaultStorage StorageAPI

func Init() {
	bucket := BucketFromConfig()
	storage, err := New(&bucket)
	if err != nil {
		log.Fatalf("Cannot initialise storage: %v", err)
	}
	log.Infof("Storage bucket: type=%d, path=%s, name=%s", bucket.StorageType, bucket.Path, bucket.Name)
	defaultStorage = storage
}

func New(bucket *Bucket) (StorageAPI, error) {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket), nil
	case StorageTypeS3:
		return NewS3Storage(bucket)
	}
	return nil, fmt.Errorf("storage type %d unavailable", bucket.StorageType)
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}
