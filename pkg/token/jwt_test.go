package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
)

func newTestManager() *Manager {
	return NewManager("test-secret", time.Hour, 24*time.Hour)
}

func TestExtractMemberID(t *testing.T) {
	m := newTestManager()

	t.Run("round-trips the member id from an access token", func(t *testing.T) {
		accessToken, err := m.GenerateAccessToken(42, "jiwoo@example.com", "USER")
		require.NoError(t, err)

		id, err := m.ExtractMemberID("Bearer " + accessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("round-trips the member id from a refresh token", func(t *testing.T) {
		refreshToken, err := m.GenerateRefreshToken(7)
		require.NoError(t, err)

		id, err := m.ExtractMemberID("Bearer " + refreshToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
	})

	t.Run("rejects bad headers", func(t *testing.T) {
		for _, header := range []string{
			"",
			"Bearer",
			"Bearer ",
			"Basic abc",
			"Bearer not-a-jwt",
		} {
			_, err := m.ExtractMemberID(header)
			assert.ErrorIs(t, err, apperror.ErrInvalidToken, "header %q", header)
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, time.Hour)
		accessToken, err := other.GenerateAccessToken(42, "jiwoo@example.com", "USER")
		require.NoError(t, err)

		_, err = m.ExtractMemberID("Bearer " + accessToken)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute, time.Hour)
		accessToken, err := expired.GenerateAccessToken(42, "jiwoo@example.com", "USER")
		require.NoError(t, err)

		_, err = m.ExtractMemberID("Bearer " + accessToken)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}

func TestSignupToken(t *testing.T) {
	m := newTestManager()

	t.Run("round-trips the oauth identity", func(t *testing.T) {
		signupToken, err := m.GenerateSignupToken("kakao", "kakao-99", "jiwoo@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := m.ParseSignupToken(signupToken)
		require.NoError(t, err)
		assert.Equal(t, "kakao", claims.Provider)
		assert.Equal(t, "kakao-99", claims.ProviderID)
		assert.Equal(t, "jiwoo@example.com", claims.Email)
	})

	t.Run("rejects tokens missing identity claims", func(t *testing.T) {
		signupToken, err := m.GenerateSignupToken("", "", "", time.Hour)
		require.NoError(t, err)

		_, err = m.ParseSignupToken(signupToken)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("an access token is not a signup token", func(t *testing.T) {
		accessToken, err := m.GenerateAccessToken(42, "jiwoo@example.com", "USER")
		require.NoError(t, err)

		_, err = m.ParseSignupToken(accessToken)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}
