package service

import (
	"context"

	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/internal/repository"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
)

type OAuthService interface {
	Register(ctx context.Context, req dto.OAuthCreateRequest) (uint, error)
	ValidateProvider(provider string) error
	DeleteByMemberID(ctx context.Context, memberID uint) error
}

type oauthService struct {
	repo             repository.OAuthRepository
	allowedProviders []string
}

func NewOAuthService(repo repository.OAuthRepository, allowedProviders []string) OAuthService {
	return &oauthService{
		repo:             repo,
		allowedProviders: allowedProviders,
	}
}

// Register links an OAuth identity to a member. A member that already holds a
// link keeps it unchanged: the call is an idempotent no-op returning the member
// id. A (provider, providerId) pair claimed by another member is rejected.
func (s *oauthService) Register(ctx context.Context, req dto.OAuthCreateRequest) (uint, error) {
	exists, err := s.repo.ExistsByMemberID(ctx, req.MemberID)
	if err != nil {
		return 0, err
	}
	if exists {
		return req.MemberID, nil
	}

	claimed, err := s.repo.ExistsByProviderAndProviderID(ctx, req.Provider, req.ProviderID)
	if err != nil {
		return 0, err
	}
	if claimed {
		return 0, apperror.ErrOAuthAlreadyExists
	}

	oauth := &model.OAuth{
		MemberID:   req.MemberID,
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
	}
	if err := s.repo.Create(ctx, oauth); err != nil {
		return 0, err
	}

	return oauth.ID, nil
}

func (s *oauthService) ValidateProvider(provider string) error {
	for _, allowed := range s.allowedProviders {
		if provider == allowed {
			return nil
		}
	}
	return apperror.ErrInvalidProvider
}

// DeleteByMemberID removes the member's link if one exists. Absence is not an
// error.
func (s *oauthService) DeleteByMemberID(ctx context.Context, memberID uint) error {
	return s.repo.DeleteByMemberID(ctx, memberID)
}
