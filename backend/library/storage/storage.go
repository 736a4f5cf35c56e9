package storage

import (
	"context"
	"strings"

	"healthmate/backend/common"
)

// Object is a file buffer on its way to the storage provider.
type Object struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	URL       string
	StorageID string
	Bytes     int64
}

// Storage uploads file buffers to a provider and returns a public URL.
type Storage interface {
	Upload(ctx context.Context, obj *Object) (*UploadResult, error)
	Name() string
}

// Default is the storage selected by Init.
var Default Storage

// Init picks Cloudinary when credentials are configured and falls back to the
// local upload directory otherwise.
func Init() error {
	if common.CloudinaryEnabled() {
		s, err := NewCloudinaryStorage(common.CloudinaryCloudName, common.CloudinaryAPIKey, common.CloudinaryAPISecret, common.CloudinaryFolder)
		if err != nil {
			return err
		}
		Default = s
		common.SysLog("Cloudinary storage enabled", "folder", common.CloudinaryFolder)
		return nil
	}
	s, err := NewLocalStorage(common.UploadPath, common.ServerAddress+"/upload")
	if err != nil {
		return err
	}
	Default = s
	common.SysLog("Cloudinary credentials missing, storing uploads locally", "path", common.UploadPath)
	return nil
}

// baseName returns the filename up to its first dot.
func baseName(filename string) string {
	if i := strings.Index(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}
