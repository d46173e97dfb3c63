package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/model"
)

func testConfig() configs.Auth {
	return configs.Auth{
		SecretKey: "test-secret",
		Audience:  "beercritic",
		Domain:    "beercritic.test",
		TokenTTL:  time.Hour,
		ResetTTL:  time.Hour,
	}
}

func testUser(t *testing.T) *model.User {
	t.Helper()

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	return &model.User{UUID: uuid.New(), Email: "ann@example.com", Name: "Ann", PasswordHash: hash}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens(testConfig())

	user := testUser(t)

	token, expires, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	userID, fp, err := tokens.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UUID, userID)
	assert.True(t, auth.MatchesFingerprint(user, fp))
}

func TestAccessToken_VoidAfterPasswordChange(t *testing.T) {
	tokens := auth.NewTokens(testConfig())
	user := testUser(t)

	token, _, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	user.PasswordHash, err = auth.HashPassword("battery staple")
	require.NoError(t, err)

	_, fp, err := tokens.ParseAccessToken(token)
	require.NoError(t, err)
	assert.False(t, auth.MatchesFingerprint(user, fp))
}

func TestAccessToken_Rejected(t *testing.T) {
	user := testUser(t)

	other := testConfig()
	other.SecretKey = "another-secret"
	forged, _, err := auth.NewTokens(other).IssueAccessToken(user)
	require.NoError(t, err)

	foreign := testConfig()
	foreign.Audience = "somebody-else"
	wrongAudience, _, err := auth.NewTokens(foreign).IssueAccessToken(user)
	require.NoError(t, err)

	expiredConfig := testConfig()
	expiredConfig.TokenTTL = -time.Minute
	expired, _, err := auth.NewTokens(expiredConfig).IssueAccessToken(user)
	require.NoError(t, err)

	tokens := auth.NewTokens(testConfig())

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"wrong secret":   forged,
		"wrong audience": wrongAudience,
		"expired":        expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := tokens.ParseAccessToken(token)
			require.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestResetToken_VoidAfterPasswordChange(t *testing.T) {
	tokens := auth.NewTokens(testConfig())
	user := testUser(t)

	token, err := tokens.IssueResetToken(user)
	require.NoError(t, err)

	email, fp, err := tokens.ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, email)
	assert.True(t, auth.MatchesFingerprint(user, fp))

	user.PasswordHash, err = auth.HashPassword("battery staple")
	require.NoError(t, err)
	assert.False(t, auth.MatchesFingerprint(user, fp))
}

func TestResetToken_NotAnAccessToken(t *testing.T) {
	tokens := auth.NewTokens(testConfig())

	access, _, err := tokens.IssueAccessToken(testUser(t))
	require.NoError(t, err)

	_, _, err = tokens.ParseResetToken(access)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	require.NoError(t, auth.CheckPassword(hash, "correct horse"))
	require.ErrorIs(t, auth.CheckPassword(hash, "wrong horse"), auth.ErrPasswordMismatch)
}

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, auth.Authorize(nil), auth.ErrUnauthenticated)
	assert.ErrorIs(t, auth.Authorize(&model.User{Role: model.RoleReader}), auth.ErrForbidden)
	assert.NoError(t, auth.Authorize(&model.User{Role: model.RoleAdmin}))
}
