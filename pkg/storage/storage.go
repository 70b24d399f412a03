package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/tracing"
)

// Kind is the category of a user-owned file.
type Kind string

const (
	KindResume Kind = "resume"
	KindAvatar Kind = "avatar"
)

var allowedContentTypes = map[Kind]map[string]bool{
	KindResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
	KindAvatar: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
}

// PresignedURL is a time-limited URL for direct browser access to an object.
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Config describes an S3-compatible bucket.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PresignTTL      time.Duration
}

// Client issues presigned URLs against an S3-compatible object store.
type Client struct {
	presigner  *s3.PresignClient
	bucketName string
	ttl        time.Duration
}

// NewClient creates a storage client. An empty endpoint means AWS S3 itself.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("storage bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		// MinIO and most S3-compatible stores need path-style addressing.
		opts.UsePathStyle = true
	}
	s3Client := s3.New(opts)

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region),
	)

	return &Client{
		presigner:  s3.NewPresignClient(s3Client),
		bucketName: cfg.BucketName,
		ttl:        cfg.PresignTTL,
	}, nil
}

// PresignUpload returns a PUT URL for the object at key.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string) (_ *PresignedURL, err error) {
	start := time.Now()
	operation := "presignPut"
	ctx, span := tracing.StartSpan(ctx, "storage."+operation, attribute.String("storage.key", key))
	defer func() { tracing.EndSpan(span, err) }()

	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.ttl))
	c.observe(ctx, operation, start, err, key)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedURL{URL: req.URL, Method: req.Method, Key: key, ExpiresAt: start.Add(c.ttl)}, nil
}

// PresignDownload returns a GET URL for the object at key.
func (c *Client) PresignDownload(ctx context.Context, key string) (_ *PresignedURL, err error) {
	start := time.Now()
	operation := "presignGet"
	ctx, span := tracing.StartSpan(ctx, "storage."+operation, attribute.String("storage.key", key))
	defer func() { tracing.EndSpan(span, err) }()

	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.ttl))
	c.observe(ctx, operation, start, err, key)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &PresignedURL{URL: req.URL, Method: req.Method, Key: key, ExpiresAt: start.Add(c.ttl)}, nil
}

func (c *Client) observe(_ context.Context, operation string, start time.Time, err error, key string) {
	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()

	fields := []zap.Field{zap.String("key", key)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogAPICall("object_storage", operation, status, duration, fields...)
}

// ParseKind validates a file kind supplied by a client.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := allowedContentTypes[k]; !ok {
		return "", fmt.Errorf("unsupported file kind: %q", raw)
	}
	return k, nil
}

// ValidateContentType checks the declared MIME type against the kind's allow list.
func ValidateContentType(kind Kind, contentType string) error {
	allowed, ok := allowedContentTypes[kind]
	if !ok {
		return fmt.Errorf("unsupported file kind: %q", kind)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowed[ct] {
		return fmt.Errorf("invalid content type %q for %s", contentType, kind)
	}
	return nil
}

// UserObjectKey builds users/{userID}/{kind}/{uuid}-{name}. The file name is
// reduced to a safe base name so callers cannot escape the prefix.
func UserObjectKey(userID string, kind Kind, fileName string) string {
	return fmt.Sprintf("%s%s-%s", UserPrefix(userID, kind), uuid.NewString(), safeFileName(fileName))
}

// UserPrefix is the key prefix owned by userID for kind.
func UserPrefix(userID string, kind Kind) string {
	return fmt.Sprintf("users/%s/%s/", userID, kind)
}

// OwnedBy reports whether key lives under any prefix owned by userID.
func OwnedBy(key, userID string) bool {
	if strings.Contains(key, "..") {
		return false
	}
	return strings.HasPrefix(key, "users/"+userID+"/")
}

func safeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	return out
}
