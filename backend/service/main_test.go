package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"healthmate/backend/common"
	"healthmate/backend/library/ai"
	"healthmate/backend/library/storage"
	"healthmate/backend/model"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	common.JWTSecret = "test-jwt-secret-key-for-unit-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-key-for-unit-tests"
	common.RedisEnabled = false
	common.RDB = nil

	dir, err := os.MkdirTemp("", "healthmate-service-test")
	if err != nil {
		panic(err)
	}
	db, err := model.OpenGorm("", filepath.Join(dir, "service_test.db"))
	if err != nil {
		panic(err)
	}
	repo, err := model.NewGormRepository(db)
	if err != nil {
		panic(err)
	}
	model.Repo = repo

	code := m.Run()
	_ = repo.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []*storage.Object
	err     error
}

func (f *fakeStorage) Name() string { return "fake" }

func (f *fakeStorage) Upload(ctx context.Context, obj *storage.Object) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, obj)
	return &storage.UploadResult{
		URL:       "https://res.cloudinary.com/demo/healthmate_uploads/" + obj.Filename,
		StorageID: "healthmate_uploads/" + obj.Filename,
		Bytes:     int64(len(obj.Data)),
	}, nil
}

type fakeAnalyzer struct {
	calls  []*ai.Request
	result *ai.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req *ai.Request) (*ai.Result, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

var errStorageDown = errors.New("storage provider unavailable")

func useFakeStorage(t *testing.T) *fakeStorage {
	t.Helper()
	prev := storage.Default
	fs := &fakeStorage{}
	storage.Default = fs
	t.Cleanup(func() { storage.Default = prev })
	return fs
}

func useFakeAnalyzer(t *testing.T, a *fakeAnalyzer) {
	t.Helper()
	prev := ai.Default
	ai.Default = a
	t.Cleanup(func() { ai.Default = prev })
}

// newFileHeader builds a multipart.FileHeader the way gin hands it to handlers.
func newFileHeader(t *testing.T, filename string, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
