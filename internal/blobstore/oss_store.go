package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Yadlapure/health-care/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

// Bucket is the subset of *oss.Bucket the store relies on.
type Bucket interface {
	PutObject(objectKey string, reader io.Reader, options ...oss.Option) error
	SignURL(objectKey string, method oss.HTTPMethod, expiredInSec int64, options ...oss.Option) (string, error)
}

type ossStore struct {
	bucket Bucket
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewOSSStore connects to the configured bucket. Missing credentials do not
// fail construction; every call then reports ErrCredentialsUnavailable.
func NewOSSStore(cfg config.OSSConfig, logger ...*zap.Logger) (Store, error) {
	l := zap.L().Named("blobstore.oss")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("blobstore.oss")
	}

	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		l.Warn("oss credentials not configured, uploads disabled")
		return NewStoreWithBucket(nil, cfg.Prefix, cfg.PresignTTL, l), nil
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", cfg.Bucket, err)
	}
	return NewStoreWithBucket(bucket, cfg.Prefix, cfg.PresignTTL, l), nil
}

func NewStoreWithBucket(bucket Bucket, prefix string, ttl time.Duration, logger *zap.Logger) Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ossStore{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		ttl:    ttl,
		logger: logger,
	}
}

func (s *ossStore) Put(ctx context.Context, objectKey string, data []byte, extensionHint string) (string, error) {
	if s.bucket == nil {
		return "", ErrCredentialsUnavailable
	}
	if strings.TrimSpace(objectKey) == "" {
		return "", ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", uploadErr(err)
	}

	body, ext := NormalizeImage(data, extensionHint)
	key := objectKey + ext

	opts := []oss.Option{}
	if ext == ".jpg" {
		opts = append(opts, oss.ContentType("image/jpeg"))
	}
	if err := s.bucket.PutObject(s.full(key), bytes.NewReader(body), opts...); err != nil {
		s.logger.Error("oss put object failed",
			zap.String("key", key),
			zap.Int("bytes", len(body)),
			zap.Error(err),
		)
		return "", uploadErr(err)
	}

	s.logger.Debug("oss put object", zap.String("key", key), zap.Int("bytes", len(body)))
	return key, nil
}

func (s *ossStore) Presign(ctx context.Context, objectKey string, mode Mode) (PresignedURL, error) {
	if s.bucket == nil {
		return PresignedURL{}, ErrCredentialsUnavailable
	}
	if strings.TrimSpace(objectKey) == "" {
		return PresignedURL{}, ErrEmptyKey
	}

	var out PresignedURL
	secs := int64(s.ttl.Seconds())
	full := s.full(objectKey)

	switch mode {
	case ModeGet, ModePut, ModeBoth:
	default:
		return PresignedURL{}, ErrInvalidMode
	}

	if mode == ModeGet || mode == ModeBoth {
		u, err := s.bucket.SignURL(full, oss.HTTPGet, secs)
		if err != nil {
			s.logger.Error("oss sign get failed", zap.String("key", objectKey), zap.Error(err))
			return PresignedURL{}, fmt.Errorf("%w: %v", ErrPresignFailed, err)
		}
		out.Get = u
	}
	if mode == ModePut || mode == ModeBoth {
		u, err := s.bucket.SignURL(full, oss.HTTPPut, secs)
		if err != nil {
			s.logger.Error("oss sign put failed", zap.String("key", objectKey), zap.Error(err))
			return PresignedURL{}, fmt.Errorf("%w: %v", ErrPresignFailed, err)
		}
		out.Put = u
	}
	return out, nil
}

func (s *ossStore) full(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}
