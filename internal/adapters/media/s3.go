package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"campusevents/internal/domain"
)

// partSize is the multipart chunk size for poster uploads.
const partSize = 5 * 1024 * 1024

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL is prefixed to object keys to form the returned URL,
	// e.g. a CloudFront domain or https://bucket.s3.region.amazonaws.com.
	PublicBaseURL string
}

// uploader is the part of manager.Uploader used here.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store uploads event media to a single bucket.
type S3Store struct {
	uploader uploader
	bucket   string
	baseURL  string
}

var _ domain.MediaStore = (*S3Store)(nil)

// NewS3Store creates an S3-backed media store using static credentials when set.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("media bucket is required")
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	awsCfg := aws.Config{Region: cfg.Region}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	client := s3.NewFromConfig(awsCfg)
	up := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = partSize
	})
	return newS3Store(up, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newS3Store(up uploader, bucket, baseURL string) *S3Store {
	return &S3Store{uploader: up, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload streams body to key and returns the object's public URL.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty object key", domain.ErrInvalidInput)
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
