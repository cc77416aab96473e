package knowledge

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var defaultDocs embed.FS

func isDocument(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Default returns the knowledge base compiled into the binary.
func Default() (*Base, error) {
	return LoadFS(defaultDocs, "data")
}

// LoadFS reads every YAML document under dir, in lexical order.
func LoadFS(fsys fs.FS, dir string) (*Base, error) {
	var names []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDocument(p) {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk knowledge dir: %w", err)
	}
	sort.Strings(names)
	var blocks []Block
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		bs, err := ParseDocument(data, strings.TrimSuffix(path.Base(name), path.Ext(name)))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, bs...)
	}
	return NewBase(blocks), nil
}

// LoadDir reads a directory on disk.
func LoadDir(dir string) (*Base, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// ObjectSource is a read-only object store, e.g. a GCS bucket.
type ObjectSource interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// LoadObjects reads every YAML object under prefix.
func LoadObjects(ctx context.Context, src ObjectSource, prefix string) (*Base, error) {
	keys, err := src.ListKeys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list knowledge objects: %w", err)
	}
	sort.Strings(keys)
	var blocks []Block
	for _, key := range keys {
		if !isDocument(key) {
			continue
		}
		rc, err := src.Open(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", key, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		bs, err := ParseDocument(data, strings.TrimSuffix(path.Base(key), path.Ext(key)))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, bs...)
	}
	return NewBase(blocks), nil
}
