package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/youvit/gramedia-display-backend/pkg/logger"
	"github.com/youvit/gramedia-display-backend/pkg/util"
)

const photoContentType = "image/jpeg"

// ObjectStoreAPI is the slice of the S3 API the uploader uses.
type ObjectStoreAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutObjectAcl(ctx context.Context, params *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// PhotoStorage persists normalized photos to S3 under deterministic public
// paths.
type PhotoStorage struct {
	client  ObjectStoreAPI
	region  string
	bucket  string
	prefix  string
	baseURL string
}

// UploadResult references a stored photo. Public is false when the object
// was written but could not be made publicly readable (partial success).
type UploadResult struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Public bool   `json:"public"`
}

func NewPhotoStorage(region, bucket, prefix, accessKeyID, secretAccessKey, baseURL string) *PhotoStorage {
	var cfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &PhotoStorage{
		client:  s3.NewFromConfig(cfg),
		region:  region,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: baseURL,
	}
}

// Upload stores data under a deterministic key built from the sanitized
// store and employee names, the capture date and the photo role, then marks
// the object publicly readable. An ACL failure is reported as a non-public
// result, not an error; the object itself is in place.
func (s *PhotoStorage) Upload(ctx context.Context, data []byte, store, employee, role string) (*UploadResult, error) {
	key := s.objectKey(store, employee, role, time.Now())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(photoContentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	result := &UploadResult{
		URL:    s.publicURL(key),
		Key:    key,
		Public: true,
	}

	_, err = s.client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		logger.Warn("Photo uploaded but could not be made public", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		result.Public = false
	}

	logger.Info("Photo uploaded", map[string]interface{}{
		"key":    key,
		"role":   role,
		"bytes":  len(data),
		"public": result.Public,
	})
	return result, nil
}

// objectKey builds
// <prefix>/<store>/<employee>/<YYYY-MM-DD>/<role>/<HHMMSS>_<8-hex>.jpg
// where the random suffix disambiguates same-second uploads.
func (s *PhotoStorage) objectKey(store, employee, role string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s_%s.jpg",
		s.prefix,
		util.SanitizeName(store),
		util.SanitizeName(employee),
		now.Format("2006-01-02"),
		role,
		now.Format("150405"),
		uuid.NewString()[:8],
	)
}

// publicURL returns the stable unauthenticated URL for a stored object,
// never a signed one.
func (s *PhotoStorage) publicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Ping verifies the bucket is reachable.
func (s *PhotoStorage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s unreachable: %w", s.bucket, err)
	}
	return nil
}
