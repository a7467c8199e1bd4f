package repository

import (
	"context"
	"errors"

	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"gorm.io/gorm"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	FindByID(ctx context.Context, id uint) (*model.Team, error)
	FindByTermAndNumber(ctx context.Context, term, number int) (*model.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByTermAndNumber(ctx context.Context, term, number int) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).
		Where("term = ? AND number = ?", term, number).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}
