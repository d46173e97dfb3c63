package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/model"
)

const purposeReset = "password_reset"

var ErrInvalidToken = errors.New("invalid token")

type resetClaims struct {
	jwt.RegisteredClaims
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fingerprint"`
}

// Tokens signs and checks HMAC tokens: bearer access tokens for API clients
// and password reset tokens. Both carry a fingerprint of the password hash,
// so they stop working once the password changes.
type Tokens struct {
	conf configs.Auth
}

func NewTokens(conf configs.Auth) *Tokens {
	return &Tokens{conf: conf}
}

func (t *Tokens) IssueAccessToken(user *model.User) (string, time.Time, error) {
	expires := time.Now().Add(t.conf.TokenTTL)

	claims := jwt.MapClaims{
		"sub": user.UUID.String(),
		"pwd": fingerprint(user.PasswordHash),
		"aud": t.conf.Audience,
		"iss": t.conf.Domain,
		"iat": time.Now().Unix(),
		"exp": expires.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.conf.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expires, nil
}

// ParseAccessToken returns the UUID of the user the token was issued for and
// its password fingerprint, to be checked with MatchesFingerprint.
func (t *Tokens) ParseAccessToken(accessToken string) (uuid.UUID, string, error) {
	token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, t.keyFunc)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, found := token.Claims.(jwt.MapClaims)
	if !found || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	if !claims.VerifyAudience(t.conf.Audience, true) || !claims.VerifyIssuer(t.conf.Domain, true) {
		return uuid.Nil, "", fmt.Errorf("%w: unexpected audience or issuer", ErrInvalidToken)
	}

	subject, _ := claims["sub"].(string)

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}

	fp, found := claims["pwd"].(string)
	if !found || fp == "" {
		return uuid.Nil, "", fmt.Errorf("%w: no password claim", ErrInvalidToken)
	}

	return userID, fp, nil
}

func (t *Tokens) IssueResetToken(user *model.User) (string, error) {
	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    t.conf.Domain,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.conf.ResetTTL)),
		},
		Purpose:     purposeReset,
		Fingerprint: fingerprint(user.PasswordHash),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.conf.SecretKey))
}

// ParseResetToken returns the email the reset token was issued for. The
// caller must still check the fingerprint against the stored password hash
// with MatchesFingerprint.
func (t *Tokens) ParseResetToken(resetToken string) (string, string, error) {
	claims := resetClaims{}

	token, err := jwt.ParseWithClaims(resetToken, &claims, t.keyFunc)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Purpose != purposeReset || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}

	return claims.Subject, claims.Fingerprint, nil
}

func MatchesFingerprint(user *model.User, fp string) bool {
	return fingerprint(user.PasswordHash) == fp
}

func (t *Tokens) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(t.conf.SecretKey), nil
}

func fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))

	return hex.EncodeToString(sum[:8])
}
