package model

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the persistence boundary shared by the relational and
// document backends.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	CreateFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, id string) (*File, error)
	// ListFilesByUser returns the user's files, most recently uploaded first.
	ListFilesByUser(ctx context.Context, userID string) ([]*File, error)

	CreateAnalysis(ctx context.Context, analysis *Analysis) error
	ListAnalysesByFile(ctx context.Context, fileID string) ([]*Analysis, error)

	Backend() string
	Close() error
}

// Repo is the repository selected by InitDB.
var Repo Repository
