package model

import (
	"time"
)

// File is the metadata record written once per successful upload.
type File struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	UserID     string    `json:"user" gorm:"column:user_id;index;size:36;not null" bson:"user"`
	Filename   string    `json:"filename" gorm:"size:255;not null" bson:"filename"`
	FileURL    string    `json:"file_url" gorm:"size:1024;not null" bson:"fileUrl"`
	FileType   string    `json:"file_type" gorm:"size:100" bson:"fileType"`
	Size       int64     `json:"size" bson:"size"`
	StorageID  string    `json:"storage_id" gorm:"size:255" bson:"storageId"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"index" bson:"uploadedAt"`
}
