package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"time"

	"healthmate/backend/common"
	hmerrors "healthmate/backend/common/errors"
	"healthmate/backend/library/storage"
	"healthmate/backend/model"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNoFile          = hmerrors.New(hmerrors.ErrNoFile, "No file uploaded")
	ErrFileNotFound    = hmerrors.New(hmerrors.ErrFileNotFound, "File not found")
	ErrUnsupportedType = hmerrors.New(hmerrors.ErrUnsupportedType, "Only PDF and image files are accepted")
	ErrFileTooLarge    = hmerrors.New(hmerrors.ErrFileTooLarge, "File is too large")
)

// UploadFile reads the multipart file, forwards it to storage and records
// the returned URL. The first failing step aborts the upload.
func UploadFile(ctx context.Context, userID string, header *multipart.FileHeader) (*model.File, error) {
	if header == nil {
		return nil, ErrNoFile
	}
	if header.Size > common.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, common.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > common.MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	contentType := DetectContentType(header.Header.Get("Content-Type"), data)
	if !IsAcceptedType(contentType) {
		return nil, ErrUnsupportedType
	}

	common.SysLog("Uploading file", "filename", header.Filename, "size", humanize.Bytes(uint64(len(data))), "type", contentType)

	result, err := storage.Default.Upload(ctx, &storage.Object{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("%s upload failed: %w", storage.Default.Name(), err)
	}

	file := &model.File{
		ID:         uuid.NewString(),
		UserID:     userID,
		Filename:   header.Filename,
		FileURL:    result.URL,
		FileType:   contentType,
		Size:       int64(len(data)),
		StorageID:  result.StorageID,
		UploadedAt: time.Now().UTC(),
	}
	if err := model.Repo.CreateFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	common.SysLog("File uploaded successfully", "url", result.URL)
	return file, nil
}

// DetectContentType trusts the declared part type unless it is missing or
// generic, in which case the content is sniffed.
func DetectContentType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != common.OctetStreamType {
		return mediaType
	}
	sniffed := mimetype.Detect(data).String()
	if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mediaType
	}
	return sniffed
}

func IsAcceptedType(contentType string) bool {
	return contentType == common.ContentTypePDF || strings.HasPrefix(contentType, common.ImageTypePrefix)
}

// ListFiles returns the user's files, newest first.
func ListFiles(ctx context.Context, userID string) ([]*model.File, error) {
	return model.Repo.ListFilesByUser(ctx, userID)
}

// GetFile returns a file owned by userID. Files owned by someone else are
// reported as not found.
func GetFile(ctx context.Context, userID string, fileID string) (*model.File, error) {
	file, err := model.Repo.GetFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if file.UserID != userID {
		return nil, ErrFileNotFound
	}
	return file, nil
}
