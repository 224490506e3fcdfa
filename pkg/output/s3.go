package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrNoBucket is returned when S3 publishing is requested without a bucket
var ErrNoBucket = errors.New("no S3 bucket configured")

// Publisher stores encoded frames under a key
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) error
}

// S3Config holds the object storage settings
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS, set for S3-compatible stores
	Region    string
	Bucket    string
	Prefix    string // Key prefix for every uploaded frame
}

// S3ConfigFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION, S3_BUCKET and S3_PREFIX
func S3ConfigFromEnv() S3Config {
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// S3Publisher uploads PNG frames to an S3 bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Publisher creates a publisher with a new S3 session
func NewS3Publisher(cfg S3Config, logger core.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string, logger core.Logger) *S3Publisher {
	if logger == nil {
		logger = nopLogger{}
	}
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Publish uploads data as a PNG object at prefix/key
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	if p.prefix != "" {
		key = path.Join(p.prefix, key)
	}
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	p.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	return nil
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}
