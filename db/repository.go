package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatterRepository defines decoupled operations for matter-cache persistence.
type MatterRepository interface {
	Put(ctx context.Context, m Matter) error
	GetByID(ctx context.Context, id string) (*Matter, error)
	List(ctx context.Context) ([]Matter, error)
	SearchByTitle(ctx context.Context, titleSubstr string) ([]Matter, error)
	Clear(ctx context.Context) error
}

// TokenRepository defines decoupled operations for token persistence.
type TokenRepository interface {
	Get(ctx context.Context) (*Token, error)
	Upsert(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// gormMatterRepo is a GORM-backed implementation of MatterRepository.
// Use constructor NewMatterRepository to obtain an instance.
type gormMatterRepo struct{ db *gorm.DB }

// gormTokenRepo is a GORM-backed implementation of TokenRepository.
// Use constructor NewTokenRepository to obtain an instance.
type gormTokenRepo struct{ db *gorm.DB }

// NewMatterRepository creates a MatterRepository. Accepts *gorm.DB to avoid global access.
func NewMatterRepository(db *gorm.DB) MatterRepository { return &gormMatterRepo{db: db} }

// NewTokenRepository creates a TokenRepository. Accepts *gorm.DB to avoid global access.
func NewTokenRepository(db *gorm.DB) TokenRepository { return &gormTokenRepo{db: db} }

func (r *gormMatterRepo) Put(ctx context.Context, m Matter) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}

func (r *gormMatterRepo) GetByID(ctx context.Context, id string) (*Matter, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var matter Matter
	err := r.db.WithContext(ctx).First(&matter, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &matter, nil
}

func (r *gormMatterRepo) List(ctx context.Context) ([]Matter, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var matters []Matter
	if err := r.db.WithContext(ctx).Find(&matters).Error; err != nil {
		return nil, err
	}
	return matters, nil
}

func (r *gormMatterRepo) SearchByTitle(ctx context.Context, titleSubstr string) ([]Matter, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var matters []Matter
	if err := r.db.WithContext(ctx).Where("title LIKE ?", "%"+titleSubstr+"%").Find(&matters).Error; err != nil {
		return nil, err
	}
	return matters, nil
}

func (r *gormMatterRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Matter{}).Error
}

func (r *gormTokenRepo) Get(ctx context.Context) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepo) Upsert(ctx context.Context, token *Token) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token"}),
	}).Create(token).Error
}

func (r *gormTokenRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Token{}).Error
}
