package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/internal/repository"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"github.com/yeol2/8-pumati-be/pkg/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeRefreshTokenRepo struct {
	saved   map[uint]string
	deletes []uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{saved: map[uint]string{}}
}

func (f *fakeRefreshTokenRepo) Save(_ context.Context, memberID uint, token string, _ time.Duration) error {
	f.saved[memberID] = token
	return nil
}

func (f *fakeRefreshTokenRepo) Delete(_ context.Context, memberID uint) error {
	f.deletes = append(f.deletes, memberID)
	delete(f.saved, memberID)
	return nil
}

type memberFixture struct {
	db          *gorm.DB
	memberRepo  repository.MemberRepository
	oauthRepo   repository.OAuthRepository
	teamRepo    repository.TeamRepository
	refreshRepo *fakeRefreshTokenRepo
	tokens      *token.Manager
	service     MemberService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Team{}, &model.Member{}, &model.OAuth{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "test-secret",
		AccessTokenTTL:             time.Hour,
		RefreshCookieMaxAge:        3600,
		DefaultProfileImagePuURL:   "https://cdn.example.com/default-pu.png",
		DefaultProfileImageMatiURL: "https://cdn.example.com/default-mati.png",
		AllowedProviders:           []string{"kakao", "google"},
	}
}

func newMemberFixture(t *testing.T) *memberFixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()

	memberRepo := repository.NewMemberRepository(db)
	oauthRepo := repository.NewOAuthRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	refreshRepo := newFakeRefreshTokenRepo()
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, time.Hour)

	teamSvc := NewTeamService(teamRepo)
	oauthSvc := NewOAuthService(oauthRepo, cfg.AllowedProviders)
	svc := NewMemberService(memberRepo, refreshRepo, teamSvc, oauthSvc, tokens, cfg)

	return &memberFixture{
		db:          db,
		memberRepo:  memberRepo,
		oauthRepo:   oauthRepo,
		teamRepo:    teamRepo,
		refreshRepo: refreshRepo,
		tokens:      tokens,
		service:     svc,
	}
}

func (f *memberFixture) signupToken(t *testing.T, provider, providerID, email string) string {
	t.Helper()

	signupToken, err := f.tokens.GenerateSignupToken(provider, providerID, email, time.Hour)
	require.NoError(t, err)
	return signupToken
}

func (f *memberFixture) signupRequest(t *testing.T, email string) dto.MemberOAuthSignupRequest {
	t.Helper()

	return dto.MemberOAuthSignupRequest{
		SignupToken: f.signupToken(t, "kakao", "kakao-"+email, email),
		Name:        "지우",
		Nickname:    "jiwoo",
		Role:        model.RoleUser,
	}
}

func TestRegisterOAuthMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member, tokens, refresh entry and oauth link", func(t *testing.T) {
		f := newMemberFixture(t)

		resp, refreshToken, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.Equal(t, "jiwoo@example.com", resp.Email)
		assert.Equal(t, string(model.RoleUser), resp.Role)
		assert.Equal(t, string(model.StateActive), resp.State)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, refreshToken, f.refreshRepo.saved[resp.ID])

		member, err := f.memberRepo.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.True(t, member.IsSocial)
		assert.NotEmpty(t, member.Password)
		assert.Contains(t,
			[]string{"https://cdn.example.com/default-pu.png", "https://cdn.example.com/default-mati.png"},
			member.ProfileImageURL)

		linked, err := f.oauthRepo.ExistsByMemberID(ctx, resp.ID)
		require.NoError(t, err)
		assert.True(t, linked)
	})

	t.Run("access token resolves back to the new member", func(t *testing.T) {
		f := newMemberFixture(t)

		resp, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
		require.NoError(t, err)

		id, err := f.tokens.ExtractMemberID("Bearer " + resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.ID, id)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newMemberFixture(t)

		_, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
		require.NoError(t, err)

		req := dto.MemberOAuthSignupRequest{
			SignupToken: f.signupToken(t, "google", "google-1", "jiwoo@example.com"),
			Name:        "민수",
			Nickname:    "minsu",
			Role:        model.RoleUser,
		}
		_, _, err = f.service.RegisterOAuthMember(ctx, req)
		assert.ErrorIs(t, err, apperror.ErrEmailAlreadyExists)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		f := newMemberFixture(t)

		req := dto.MemberOAuthSignupRequest{
			SignupToken: f.signupToken(t, "github", "gh-1", "jiwoo@example.com"),
			Name:        "지우",
			Nickname:    "jiwoo",
			Role:        model.RoleUser,
		}
		_, _, err := f.service.RegisterOAuthMember(ctx, req)
		assert.ErrorIs(t, err, apperror.ErrInvalidProvider)
	})

	t.Run("garbage signup token is rejected", func(t *testing.T) {
		f := newMemberFixture(t)

		req := dto.MemberOAuthSignupRequest{
			SignupToken: "not-a-jwt",
			Name:        "지우",
			Nickname:    "jiwoo",
			Role:        model.RoleUser,
		}
		_, _, err := f.service.RegisterOAuthMember(ctx, req)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("resolves team from term and number", func(t *testing.T) {
		f := newMemberFixture(t)

		team := &model.Team{Term: 8, Number: 3}
		require.NoError(t, f.teamRepo.Create(ctx, team))

		req := f.signupRequest(t, "jiwoo@example.com")
		term, number := 8, 3
		req.Term = &term
		req.TeamNumber = &number

		resp, _, err := f.service.RegisterOAuthMember(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp.TeamID)
		assert.Equal(t, team.ID, *resp.TeamID)
	})
}

func TestGetByAuthHeader(t *testing.T) {
	ctx := context.Background()
	f := newMemberFixture(t)

	resp, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
	require.NoError(t, err)

	byID, err := f.service.Get(ctx, resp.ID)
	require.NoError(t, err)

	byToken, err := f.service.GetByAuthHeader(ctx, "Bearer "+resp.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, byID, byToken)

	_, err = f.service.GetByAuthHeader(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	_, err = f.service.GetByAuthHeader(ctx, "Basic abc")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestGet_NotFound(t *testing.T) {
	f := newMemberFixture(t)

	_, err := f.service.Get(context.Background(), 4242)
	assert.ErrorIs(t, err, apperror.ErrMemberNotFound)
}

func TestGetAllByTeamID(t *testing.T) {
	ctx := context.Background()
	f := newMemberFixture(t)

	t.Run("empty team yields empty slice", func(t *testing.T) {
		members, err := f.service.GetAllByTeamID(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, members)
		assert.Empty(t, members)
	})

	t.Run("returns members with team fields", func(t *testing.T) {
		team := &model.Team{Term: 8, Number: 1}
		require.NoError(t, f.teamRepo.Create(ctx, team))

		req := f.signupRequest(t, "jiwoo@example.com")
		term, number := 8, 1
		req.Term = &term
		req.TeamNumber = &number
		_, _, err := f.service.RegisterOAuthMember(ctx, req)
		require.NoError(t, err)

		members, err := f.service.GetAllByTeamID(ctx, team.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.NotNil(t, members[0].Term)
		assert.Equal(t, 8, *members[0].Term)
		require.NotNil(t, members[0].TeamNumber)
		assert.Equal(t, 1, *members[0].TeamNumber)
	})
}

func TestRegisterAiMember(t *testing.T) {
	ctx := context.Background()
	f := newMemberFixture(t)

	id, err := f.service.RegisterAiMember(ctx, dto.AiMemberSignupRequest{
		Name:     "품앗이",
		Nickname: "pumati-bot",
	})
	require.NoError(t, err)

	member, err := f.memberRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(member.Email, "ai_"))
	assert.True(t, strings.HasSuffix(member.Email, "@pumati.ai"))
	assert.False(t, member.IsSocial)
	assert.Equal(t, model.RoleUser, member.Role)
	assert.Equal(t, model.StateActive, member.State)
	assert.NotEmpty(t, member.ProfileImageURL)

	// Emails are namespaced random identifiers, so a second bot never collides.
	id2, err := f.service.RegisterAiMember(ctx, dto.AiMemberSignupRequest{
		Name:     "품앗이",
		Nickname: "pumati-bot",
	})
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestModify(t *testing.T) {
	ctx := context.Background()

	signup := func(t *testing.T, f *memberFixture) (uint, string) {
		resp, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
		require.NoError(t, err)
		return resp.ID, "Bearer " + resp.AccessToken
	}

	t.Run("no fields leaves the member unchanged", func(t *testing.T) {
		f := newMemberFixture(t)
		id, header := signup(t, f)

		before, err := f.memberRepo.FindByID(ctx, id)
		require.NoError(t, err)

		require.NoError(t, f.service.Modify(ctx, header, dto.MemberUpdateRequest{}))

		after, err := f.memberRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Nickname, after.Nickname)
		assert.Equal(t, before.ProfileImageURL, after.ProfileImageURL)
		assert.Equal(t, before.Course, after.Course)
		assert.Equal(t, before.Role, after.Role)
		assert.Equal(t, before.TeamID, after.TeamID)
	})

	t.Run("blank strings are treated as absent", func(t *testing.T) {
		f := newMemberFixture(t)
		id, header := signup(t, f)

		blank := "   "
		require.NoError(t, f.service.Modify(ctx, header, dto.MemberUpdateRequest{
			Name:     &blank,
			Nickname: &blank,
		}))

		after, err := f.memberRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "지우", after.Name)
		assert.Equal(t, "jiwoo", after.Nickname)
	})

	t.Run("applies supplied fields only", func(t *testing.T) {
		f := newMemberFixture(t)
		id, header := signup(t, f)

		nickname := "jiwoo2"
		course := model.CourseBackend
		require.NoError(t, f.service.Modify(ctx, header, dto.MemberUpdateRequest{
			Nickname: &nickname,
			Course:   &course,
		}))

		after, err := f.memberRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "jiwoo2", after.Nickname)
		require.NotNil(t, after.Course)
		assert.Equal(t, model.CourseBackend, *after.Course)
		assert.Equal(t, "지우", after.Name)
	})

	t.Run("unresolvable team pair clears the team", func(t *testing.T) {
		f := newMemberFixture(t)

		team := &model.Team{Term: 8, Number: 2}
		require.NoError(t, f.teamRepo.Create(ctx, team))

		req := f.signupRequest(t, "jiwoo@example.com")
		term, number := 8, 2
		req.Term = &term
		req.TeamNumber = &number
		resp, _, err := f.service.RegisterOAuthMember(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp.TeamID)

		ghostTerm, ghostNumber := 99, 99
		require.NoError(t, f.service.Modify(ctx, "Bearer "+resp.AccessToken, dto.MemberUpdateRequest{
			Term:       &ghostTerm,
			TeamNumber: &ghostNumber,
		}))

		after, err := f.memberRepo.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Nil(t, after.TeamID)
	})

	t.Run("resolvable team pair moves the member", func(t *testing.T) {
		f := newMemberFixture(t)
		id, header := signup(t, f)

		team := &model.Team{Term: 9, Number: 5}
		require.NoError(t, f.teamRepo.Create(ctx, team))

		term, number := 9, 5
		require.NoError(t, f.service.Modify(ctx, header, dto.MemberUpdateRequest{
			Term:       &term,
			TeamNumber: &number,
		}))

		after, err := f.memberRepo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, after.TeamID)
		assert.Equal(t, team.ID, *after.TeamID)
	})

	t.Run("invalid header fails", func(t *testing.T) {
		f := newMemberFixture(t)
		err := f.service.Modify(ctx, "", dto.MemberUpdateRequest{})
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}

func TestToggleEmailConsent(t *testing.T) {
	ctx := context.Background()
	f := newMemberFixture(t)

	resp, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
	require.NoError(t, err)
	header := "Bearer " + resp.AccessToken

	before, err := f.memberRepo.FindByID(ctx, resp.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.ToggleEmailConsent(ctx, header))
	mid, err := f.memberRepo.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, !before.HasEmailConsent, mid.HasEmailConsent)

	// Toggling twice returns the member to the original consent value.
	require.NoError(t, f.service.ToggleEmailConsent(ctx, header))
	after, err := f.memberRepo.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, before.HasEmailConsent, after.HasEmailConsent)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes member, oauth link and refresh token", func(t *testing.T) {
		f := newMemberFixture(t)

		resp, _, err := f.service.RegisterOAuthMember(ctx, f.signupRequest(t, "jiwoo@example.com"))
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, "Bearer "+resp.AccessToken))

		_, err = f.memberRepo.FindByID(ctx, resp.ID)
		assert.ErrorIs(t, err, apperror.ErrMemberNotFound)

		linked, err := f.oauthRepo.ExistsByMemberID(ctx, resp.ID)
		require.NoError(t, err)
		assert.False(t, linked)

		assert.Contains(t, f.refreshRepo.deletes, resp.ID)
		assert.NotContains(t, f.refreshRepo.saved, resp.ID)
	})

	t.Run("missing member fails before any cleanup", func(t *testing.T) {
		f := newMemberFixture(t)

		ghost, err := f.tokens.GenerateAccessToken(777, "ghost@example.com", string(model.RoleUser))
		require.NoError(t, err)

		err = f.service.Delete(ctx, "Bearer "+ghost)
		assert.ErrorIs(t, err, apperror.ErrMemberNotFound)
		assert.Empty(t, f.refreshRepo.deletes)
	})

	t.Run("invalid header fails", func(t *testing.T) {
		f := newMemberFixture(t)
		assert.ErrorIs(t, f.service.Delete(ctx, "Bearer garbage"), apperror.ErrInvalidToken)
	})
}
