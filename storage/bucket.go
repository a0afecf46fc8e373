package storage

import (
	"strings"

	"palette/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket describes where post attachments are kept
type Bucket struct {
	Name          string // S3 bucket name, unused for disk storage
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string
	Endpoint      string
	AuthDetails   string // In case of S3 bucket - "key:secret"
	SSEEncryption string
	URLPrefix     string
}

// BucketFromConfig builds the single bucket the server writes to
func BucketFromConfig() Bucket {
	b := Bucket{
		StorageType:   StorageTypeFile,
		Path:          config.STORAGE_DIR,
		URLPrefix:     config.PUBLIC_URL_PREFIX,
		SSEEncryption: config.S3_SSE,
	}
	if strings.EqualFold(config.STORAGE_TYPE, "s3") {
		b.StorageType = StorageTypeS3
		b.Name = config.S3_BUCKET
		b.Path = config.S3_PREFIX
		b.Region = config.S3_REGION
		b.Endpoint = config.S3_ENDPOINT
		if config.S3_KEY != "" {
			b.AuthDetails = config.S3_KEY + ":" + config.S3_SECRET
		}
	}
	return b
}

// GetRemotePath returns the object key, including the bucket prefix
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

func (b *Bucket) CreateSVC() (*s3.S3, error) {
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	if key, secret, ok := strings.Cut(b.AuthDetails, ":"); ok {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(key, secret, ""))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}
