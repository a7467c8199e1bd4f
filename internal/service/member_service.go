package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/internal/repository"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"github.com/yeol2/8-pumati-be/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// AI members never authenticate; the hash only satisfies the not-null column.
const aiMemberPassword = "!A1ai-comment"

type MemberService interface {
	Get(ctx context.Context, id uint) (*dto.MemberResponse, error)
	GetByAuthHeader(ctx context.Context, authorizationHeader string) (*dto.MemberResponse, error)
	GetAllByTeamID(ctx context.Context, teamID uint) ([]*dto.MemberResponse, error)
	RegisterOAuthMember(ctx context.Context, req dto.MemberOAuthSignupRequest) (*dto.MemberSignupResponse, string, error)
	RegisterAiMember(ctx context.Context, req dto.AiMemberSignupRequest) (uint, error)
	Modify(ctx context.Context, authorizationHeader string, req dto.MemberUpdateRequest) error
	ToggleEmailConsent(ctx context.Context, authorizationHeader string) error
	Delete(ctx context.Context, authorizationHeader string) error
}

type memberService struct {
	memberRepo   repository.MemberRepository
	refreshRepo  repository.RefreshTokenRepository
	teamService  TeamService
	oauthService OAuthService
	tokens       *token.Manager
	refreshTTL   time.Duration

	defaultProfileImagePuURL   string
	defaultProfileImageMatiURL string
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	refreshRepo repository.RefreshTokenRepository,
	teamService TeamService,
	oauthService OAuthService,
	tokens *token.Manager,
	cfg *config.Config,
) MemberService {
	return &memberService{
		memberRepo:                 memberRepo,
		refreshRepo:                refreshRepo,
		teamService:                teamService,
		oauthService:               oauthService,
		tokens:                     tokens,
		refreshTTL:                 time.Duration(cfg.RefreshCookieMaxAge) * time.Second,
		defaultProfileImagePuURL:   cfg.DefaultProfileImagePuURL,
		defaultProfileImageMatiURL: cfg.DefaultProfileImageMatiURL,
	}
}

func (s *memberService) Get(ctx context.Context, id uint) (*dto.MemberResponse, error) {
	member, err := s.memberRepo.FindByIDWithTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewMemberResponse(member), nil
}

func (s *memberService) GetByAuthHeader(ctx context.Context, authorizationHeader string) (*dto.MemberResponse, error) {
	memberID, err := s.tokens.ExtractMemberID(authorizationHeader)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, memberID)
}

func (s *memberService) GetAllByTeamID(ctx context.Context, teamID uint) ([]*dto.MemberResponse, error) {
	members, err := s.memberRepo.FindAllByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.NewMemberResponse(member))
	}
	return responses, nil
}

// RegisterOAuthMember completes an OAuth signup. It returns the signup response
// and the refresh token the handler should set as a cookie.
func (s *memberService) RegisterOAuthMember(ctx context.Context, req dto.MemberOAuthSignupRequest) (*dto.MemberSignupResponse, string, error) {
	claims, err := s.tokens.ParseSignupToken(req.SignupToken)
	if err != nil {
		return nil, "", err
	}

	if err := s.oauthService.ValidateProvider(claims.Provider); err != nil {
		return nil, "", err
	}

	exists, err := s.memberRepo.ExistsByEmail(ctx, claims.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", apperror.ErrEmailAlreadyExists
	}

	member, err := s.buildOAuthMember(ctx, req, claims.Email)
	if err != nil {
		return nil, "", err
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, "", err
	}

	accessToken, err := s.tokens.GenerateAccessToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return nil, "", err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, "", err
	}
	if err := s.refreshRepo.Save(ctx, member.ID, refreshToken, s.refreshTTL); err != nil {
		return nil, "", err
	}

	// An existing link for this member is a no-op inside Register.
	if _, err := s.oauthService.Register(ctx, dto.OAuthCreateRequest{
		MemberID:   member.ID,
		Provider:   claims.Provider,
		ProviderID: claims.ProviderID,
	}); err != nil {
		return nil, "", err
	}

	return &dto.MemberSignupResponse{
		ID:          member.ID,
		TeamID:      member.TeamID,
		Email:       member.Email,
		Name:        member.Name,
		Nickname:    member.Nickname,
		Role:        string(member.Role),
		State:       string(member.State),
		AccessToken: accessToken,
	}, refreshToken, nil
}

func (s *memberService) RegisterAiMember(ctx context.Context, req dto.AiMemberSignupRequest) (uint, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(aiMemberPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	member := &model.Member{
		Email:           generateUniqueAiEmail(),
		Password:        string(hashed),
		IsSocial:        false,
		Name:            req.Name,
		Nickname:        req.Nickname,
		ProfileImageURL: s.randomDefaultProfileImageURL(),
		Role:            model.RoleUser,
		State:           model.StateActive,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return 0, err
	}

	return member.ID, nil
}

// Modify applies a partial update: nil (or blank-after-trim) fields are left
// untouched. A (term, teamNumber) pair that resolves to no team clears the
// member's team.
func (s *memberService) Modify(ctx context.Context, authorizationHeader string, req dto.MemberUpdateRequest) error {
	memberID, err := s.tokens.ExtractMemberID(authorizationHeader)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if req.Term != nil && req.TeamNumber != nil {
		team, err := s.teamService.GetByTermAndNumber(ctx, *req.Term, *req.TeamNumber)
		if err != nil {
			return err
		}
		if team == nil {
			member.TeamID = nil
		} else {
			member.TeamID = &team.ID
		}
		member.Team = nil
	}

	if v := trimmedOrEmpty(req.ProfileImageURL); v != "" {
		member.ProfileImageURL = v
	}
	if v := trimmedOrEmpty(req.Name); v != "" {
		member.Name = v
	}
	if v := trimmedOrEmpty(req.Nickname); v != "" {
		member.Nickname = v
	}
	if req.Course != nil {
		member.Course = req.Course
	}
	if req.Role != nil {
		member.Role = *req.Role
	}

	return s.memberRepo.Update(ctx, member)
}

func (s *memberService) ToggleEmailConsent(ctx context.Context, authorizationHeader string) error {
	memberID, err := s.tokens.ExtractMemberID(authorizationHeader)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	member.HasEmailConsent = !member.HasEmailConsent
	return s.memberRepo.Update(ctx, member)
}

// Delete closes the account: the member must exist before any cleanup runs,
// then the refresh token, the OAuth link and the member row are removed once
// each.
func (s *memberService) Delete(ctx context.Context, authorizationHeader string) error {
	memberID, err := s.tokens.ExtractMemberID(authorizationHeader)
	if err != nil {
		return err
	}

	exists, err := s.memberRepo.ExistsByID(ctx, memberID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrMemberNotFound
	}

	if err := s.refreshRepo.Delete(ctx, memberID); err != nil {
		return err
	}
	if err := s.oauthService.DeleteByMemberID(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, memberID)
}

func (s *memberService) buildOAuthMember(ctx context.Context, req dto.MemberOAuthSignupRequest, email string) (*model.Member, error) {
	var teamID *uint
	if req.Term != nil && req.TeamNumber != nil {
		team, err := s.teamService.GetByTermAndNumber(ctx, *req.Term, *req.TeamNumber)
		if err != nil {
			return nil, err
		}
		if team != nil {
			teamID = &team.ID
		}
	}

	// OAuth members authenticate externally; the password is a throwaway.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profileImageURL := strings.TrimSpace(req.ProfileImageURL)
	if profileImageURL == "" {
		profileImageURL = s.randomDefaultProfileImageURL()
	}

	return &model.Member{
		TeamID:          teamID,
		Email:           email,
		Password:        string(hashed),
		IsSocial:        true,
		Name:            req.Name,
		Nickname:        req.Nickname,
		Course:          req.Course,
		ProfileImageURL: profileImageURL,
		Role:            req.Role,
		State:           model.StateActive,
	}, nil
}

func (s *memberService) randomDefaultProfileImageURL() string {
	if rand.IntN(2) == 0 {
		return s.defaultProfileImagePuURL
	}
	return s.defaultProfileImageMatiURL
}

func generateUniqueAiEmail() string {
	return fmt.Sprintf("ai_%s@pumati.ai", uuid.NewString())
}

func trimmedOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
