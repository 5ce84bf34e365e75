package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxtnflur/ar-api/internal/domain"
)

const testSecretKey = "test-secret-key"

func TestCreateTokens_ValidateRoundtrip(t *testing.T) {
	svc := NewAuthService(testSecretKey)
	tokenData := domain.TokenData{UserID: 7, TelegramID: 99}

	tokens, err := svc.CreateTokens(tokenData)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	got, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokenData, got)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewAuthService(testSecretKey)

	// Выпускаем токен "в прошлом", чтобы exp уже истек
	svc.now = func() time.Time { return time.Now().Add(-tokenDuration - time.Hour) }
	tokens, err := svc.CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := NewAuthService(testSecretKey)

	tokens, err := svc.CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"tampered", tokens.AccessToken + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens, err := NewAuthService("other-secret").CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	_, err = NewAuthService(testSecretKey).ValidateToken(tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := NewAuthService(testSecretKey)
	tokenData := domain.TokenData{UserID: 7, TelegramID: 99}

	tokens, err := svc.CreateTokens(tokenData)
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)

	// Новая пара несет ту же идентичность
	got, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokenData, got)
}

func TestRefreshTokens_AccessTokenRejected(t *testing.T) {
	svc := NewAuthService(testSecretKey)

	tokens, err := svc.CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	// Access-токен не годится для refresh: scope не тот
	_, err = svc.RefreshTokens(tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefreshTokens_Expired(t *testing.T) {
	svc := NewAuthService(testSecretKey)

	svc.now = func() time.Time { return time.Now().Add(-tokenDuration - time.Hour) }
	tokens, err := svc.CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.RefreshTokens(tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}
