package model

import (
	"time"
)

const (
	AnalysisStatusCompleted = "completed"
	AnalysisStatusFailed    = "failed"
)

// Analysis stores one response of the AI analysis endpoint for a file.
type Analysis struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	FileID    string    `json:"file_id" gorm:"index;size:36;not null" bson:"fileId"`
	UserID    string    `json:"user" gorm:"column:user_id;index;size:36;not null" bson:"user"`
	Model     string    `json:"model" gorm:"size:100" bson:"model"`
	Summary   string    `json:"summary" gorm:"type:text" bson:"summary"`
	Findings  string    `json:"findings" gorm:"type:text" bson:"findings"`
	Status    string    `json:"status" gorm:"size:20" bson:"status"`
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"createdAt"`
}
