package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sirupsen/logrus"

	"admissions_backend/internals/configs"
)

// OSSStore keeps objects in an Aliyun OSS bucket under Prefix.
type OSSStore struct {
	Bucket *oss.Bucket
	Prefix string
}

func NewOSSStore(cfg configs.OSSConfig, log logrus.FieldLogger) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, errors.New("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if cfg.SecurityToken != "" {
		client, err = oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, oss.SecurityToken(cfg.SecurityToken))
	} else {
		client, err = oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Location check is advisory; restricted keys often lack the permission.
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 {
			log.WithField("bucket", cfg.Bucket).Warn("oss: skip location check (AccessDenied)")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.WithFields(logrus.Fields{"bucket": cfg.Bucket, "location": loc}).Info("oss bucket ready")
	}

	return &OSSStore{Bucket: bkt, Prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (s *OSSStore) objectKey(handle string) string {
	if s.Prefix == "" {
		return handle
	}
	return s.Prefix + "/" + handle
}

func (s *OSSStore) Save(ctx context.Context, dir, filename, contentType string, r io.Reader) (string, error) {
	key := BuildKey(dir, filename)
	return key, s.put(ctx, key, contentType, r)
}

func (s *OSSStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	return s.put(ctx, key, contentType, r)
}

func (s *OSSStore) put(ctx context.Context, key, contentType string, r io.Reader) error {
	if !validHandle(key) {
		return ErrInvalidHandle
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("attachment"),
	}
	return s.Bucket.PutObject(s.objectKey(key), r, opts...)
}

func (s *OSSStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	if !validHandle(handle) {
		return nil, ErrInvalidHandle
	}
	body, err := s.Bucket.GetObject(s.objectKey(handle), oss.WithContext(ctx))
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	return body, err
}

func (s *OSSStore) Delete(ctx context.Context, handle string) error {
	if !validHandle(handle) {
		return ErrInvalidHandle
	}
	return s.Bucket.DeleteObject(s.objectKey(handle), oss.WithContext(ctx))
}

func isNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404
	}
	return false
}
