package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

type diskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

func openDiskv(basePath string) (*diskvBackend, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvBackend{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

func (b *diskvBackend) read(_ context.Context, key string) ([]byte, error) {
	val, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound
		}
		return nil, err
	}
	return val, nil
}

func (b *diskvBackend) write(_ context.Context, key string, val []byte) error {
	return b.d.Write(key, val)
}

func (b *diskvBackend) keys(ctx context.Context, prefix string) []string {
	var out []string
	for key := range b.d.KeysPrefix(prefix, ctx.Done()) {
		out = append(out, key)
	}
	return out
}

func (b *diskvBackend) watchRoot() (string, bool) { return b.basePath, true }

func (b *diskvBackend) keyForPath(path string) (string, bool) {
	rel, err := filepath.Rel(b.basePath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if rel == "." || len(parts) < 2 {
		return "", true
	}
	return pathToKeyTransform(&diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}), true
}

func (b *diskvBackend) close() error { return nil }

// keyToPathTransform lays `day:2025-10-11` out as day/2025-10-11.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s:%s", strings.Join(pathKey.Path, ":"), pathKey.FileName)
}
