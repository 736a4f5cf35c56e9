package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"healthmate/backend/common"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryStorage struct {
	api    uploadAPI
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{api: &cld.Upload, folder: folder}, nil
}

func (s *CloudinaryStorage) Name() string {
	return "cloudinary"
}

// uploadParams mirrors the naming rules for report uploads: PDFs go up as raw
// resources, names are kept and never overwritten.
func (s *CloudinaryStorage) uploadParams(obj *Object) uploader.UploadParams {
	resourceType := "auto"
	if obj.ContentType == common.ContentTypePDF {
		resourceType = "raw"
	}
	return uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       baseName(obj.Filename),
		ResourceType:   resourceType,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
	}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, obj *Object) (*UploadResult, error) {
	resp, err := s.api.Upload(ctx, bytes.NewReader(obj.Data), s.uploadParams(obj))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("cloudinary returned an empty response")
	}
	if resp.Error.Message != "" {
		return nil, errors.New(resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return nil, errors.New("cloudinary response has no secure_url")
	}
	return &UploadResult{
		URL:       resp.SecureURL,
		StorageID: resp.PublicID,
		Bytes:     int64(resp.Bytes),
	}, nil
}
