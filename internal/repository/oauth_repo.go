package repository

import (
	"context"
	"errors"

	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"gorm.io/gorm"
)

type OAuthRepository interface {
	Create(ctx context.Context, oauth *model.OAuth) error
	ExistsByMemberID(ctx context.Context, memberID uint) (bool, error)
	ExistsByProviderAndProviderID(ctx context.Context, provider, providerID string) (bool, error)
	DeleteByMemberID(ctx context.Context, memberID uint) error
}

type oauthRepository struct {
	db *gorm.DB
}

func NewOAuthRepository(db *gorm.DB) OAuthRepository {
	return &oauthRepository{db: db}
}

func (r *oauthRepository) Create(ctx context.Context, oauth *model.OAuth) error {
	if err := r.db.WithContext(ctx).Create(oauth).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrOAuthAlreadyExists
		}
		return err
	}
	return nil
}

func (r *oauthRepository) ExistsByMemberID(ctx context.Context, memberID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.OAuth{}).
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *oauthRepository) ExistsByProviderAndProviderID(ctx context.Context, provider, providerID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.OAuth{}).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *oauthRepository) DeleteByMemberID(ctx context.Context, memberID uint) error {
	return r.db.WithContext(ctx).
		Delete(&model.OAuth{}, "member_id = ?", memberID).Error
}
