package repository

import (
	"context"
	"errors"

	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	FindByIDWithTeam(ctx context.Context, id uint) (*model.Member, error)
	FindAllByTeamID(ctx context.Context, teamID uint) ([]*model.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id uint) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		// The unique index backs the service-level pre-check under races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).
		First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

func (r *memberRepository) FindByIDWithTeam(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).
		Preload("Team").
		First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

func (r *memberRepository) FindAllByTeamID(ctx context.Context, teamID uint) ([]*model.Member, error) {
	var members []*model.Member
	if err := r.db.WithContext(ctx).
		Preload("Team").
		Where("team_id = ?", teamID).
		Order("id").
		Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *memberRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, "id = ?", id).Error
}
