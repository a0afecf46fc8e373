package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"palette/metrics"
	"palette/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	PostFilesLocation  = "post"
	ThumbFilesLocation = "thumb"
)

// FreeSpaceMargin is left free on the storage by every upload
const FreeSpaceMargin = 16 << 20

var ErrInsufficientStorage = errors.New("storage: not enough free space")

// Uploader stores post attachments and turns them into MyFile records
type Uploader struct {
	Storage StorageAPI
}

func NewUploader(storage StorageAPI) *Uploader {
	return &Uploader{Storage: storage}
}

// UploadFiles saves every file or none: objects already stored are removed when one fails
func (u *Uploader) UploadFiles(ctx context.Context, headers []*multipart.FileHeader) ([]models.MyFile, error) {
	if err := u.checkFreeSpace(headers); err != nil {
		return nil, err
	}
	result := make([]models.MyFile, 0, len(headers))
	for _, header := range headers {
		file, err := u.uploadFile(ctx, header)
		metrics.RecordUpload(file.Size, err)
		if err != nil {
			// the failed object may be partially written
			u.DeleteFiles(ctx, append(result, file))
			return nil, fmt.Errorf("upload %q: %w", header.Filename, err)
		}
		result = append(result, file)
	}
	return result, nil
}

func (u *Uploader) checkFreeSpace(headers []*multipart.FileHeader) error {
	if len(headers) == 0 {
		return nil
	}
	var needed uint64 = FreeSpaceMargin
	for _, header := range headers {
		if header.Size > 0 {
			needed += uint64(header.Size)
		}
	}
	if free := u.Storage.GetFreeSpace(); free < needed {
		log.Warnf("Rejecting upload of %d files: %d bytes needed, %d free", len(headers), needed, free)
		return fmt.Errorf("%w: %d bytes needed", ErrInsufficientStorage, needed)
	}
	return nil
}

func (u *Uploader) uploadFile(ctx context.Context, header *multipart.FileHeader) (models.MyFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	file := models.MyFile{
		OriginalFileName: filepath.Base(header.Filename),
		StoreFileName:    PostFilesLocation + "/" + uuid.NewString() + ext,
		MimeType:         detectMimeType(header, ext),
	}
	reader, err := header.Open()
	if err != nil {
		return file, err
	}
	defer reader.Close()
	file.Size, err = u.Storage.Save(ctx, file.StoreFileName, reader, file.MimeType)
	return file, err
}

// DeleteFiles removes the stored objects, failures are only logged
func (u *Uploader) DeleteFiles(ctx context.Context, files []models.MyFile) {
	for _, f := range files {
		for _, path := range f.StoredPaths() {
			if err := u.Storage.Delete(ctx, path); err != nil {
				log.Warnf("Cannot delete stored object %s: %v", path, err)
			}
		}
	}
}

// URL implements the resolver the services use to build file links
func (u *Uploader) URL(path string) string {
	if path == "" {
		return ""
	}
	return u.Storage.URL(path)
}

func detectMimeType(header *multipart.FileHeader, ext string) string {
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			mimeType = byExt
		}
	}
	if mimeType == "" {
		return "application/octet-stream"
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	return mimeType
}
