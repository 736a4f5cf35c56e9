package model

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type GormRepository struct {
	db      *gorm.DB
	dialect string
}

// NewGormRepository migrates the schema and wraps db.
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&User{}, &File{}, &Analysis{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database schema: %w", err)
	}
	return &GormRepository{db: db, dialect: db.Dialector.Name()}, nil
}

func (r *GormRepository) Backend() string {
	return r.dialect
}

func (r *GormRepository) CreateUser(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormRepository) CreateFile(ctx context.Context, file *File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *GormRepository) GetFile(ctx context.Context, id string) (*File, error) {
	var file File
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &file, nil
}

func (r *GormRepository) ListFilesByUser(ctx context.Context, userID string) ([]*File, error) {
	files := make([]*File, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at desc").
		Find(&files).Error
	return files, err
}

func (r *GormRepository) CreateAnalysis(ctx context.Context, analysis *Analysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *GormRepository) ListAnalysesByFile(ctx context.Context, fileID string) ([]*Analysis, error) {
	analyses := make([]*Analysis, 0)
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at desc").
		Find(&analyses).Error
	return analyses, err
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
