// Package storage persists uploaded attachments and generated letters behind an
// opaque handle. Two drivers exist: the local filesystem and Aliyun OSS.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"admissions_backend/internals/configs"
	helper "admissions_backend/internals/helpers"
)

const maxNameLen = 80

var (
	ErrNotFound      = errors.New("storage: object not found")
	ErrInvalidHandle = errors.New("storage: invalid handle")
)

// DocumentStore saves binary payloads and resolves handles back to bytes.
// A handle is the relative key "dir/name"; it never carries a host or scheme.
type DocumentStore interface {
	Save(ctx context.Context, dir, filename, contentType string, r io.Reader) (string, error)
	// Put writes under an exact key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Open(ctx context.Context, handle string) (io.ReadCloser, error)
	Delete(ctx context.Context, handle string) error
}

// NewFromConfig picks the driver named by STORAGE_DRIVER. root is a local
// directory; on OSS its last element becomes a sub-prefix of ALI_OSS_PREFIX.
func NewFromConfig(cfg *configs.Config, root string, log logrus.FieldLogger) (DocumentStore, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStore(root)
	case "oss":
		ossCfg := cfg.OSS
		ossCfg.Prefix = strings.Trim(path.Join(ossCfg.Prefix, path.Base(filepath.ToSlash(root))), "/")
		return NewOSSStore(ossCfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// BuildKey returns "dir/<rand8>_<slug><ext>". The random prefix keeps two uploads
// with the same original name apart.
func BuildKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := uuid.NewString()[:8] + "_" + helper.Slugify(base, maxNameLen) + ext
	if d := cleanDir(dir); d != "" {
		return d + "/" + name
	}
	return name
}

// ExactKey joins dir and filename without randomising, for artifacts whose name is
// already unique (admission letters are keyed by application code).
func ExactKey(dir, filename string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return -1
	}, filepath.Base(filename))
	if strings.Trim(name, ".") == "" {
		name = "file"
	}
	if d := cleanDir(dir); d != "" {
		return d + "/" + name
	}
	return name
}

func cleanDir(dir string) string {
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(dir, "/") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, helper.Slugify(p, maxNameLen))
	}
	return strings.Join(parts, "/")
}

// validHandle rejects absolute handles and any ".." segment.
func validHandle(handle string) bool {
	if handle == "" || strings.HasPrefix(handle, "/") || strings.Contains(handle, "\\") {
		return false
	}
	return path.Clean(handle) == handle && !strings.HasPrefix(handle, "..")
}
