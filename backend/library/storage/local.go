package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes uploads under dir; gin serves dir at baseURL.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir string, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Name() string {
	return "local"
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Upload(ctx context.Context, obj *Object) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(obj.Filename))
	link := uuid.NewString() + ext
	if name := sanitize(baseName(obj.Filename)); name != "" {
		link = name + "-" + link
	}
	if err := os.WriteFile(filepath.Join(s.dir, link), obj.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", link, err)
	}
	return &UploadResult{
		URL:       s.baseURL + "/" + link,
		StorageID: link,
		Bytes:     int64(len(obj.Data)),
	}, nil
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
