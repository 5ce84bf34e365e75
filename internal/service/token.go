package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sxtnflur/ar-api/internal/domain"
)

const (
	tokenDuration = time.Hour * 24 * 30

	scopeAccessToken  = "access_token"
	scopeRefreshToken = "refresh_token"
)

// AuthService выпускает и проверяет JWT-пары. Access и refresh токены
// отличаются только полем scope.
type AuthService struct {
	secretKey []byte
	now       func() time.Time
}

var _ domain.TokenService = (*AuthService)(nil)

func NewAuthService(secretKey string) *AuthService {
	return &AuthService{secretKey: []byte(secretKey), now: time.Now}
}

type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func (s *AuthService) createToken(sub, scope string) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

func (s *AuthService) CreateTokens(tokenData domain.TokenData) (domain.Tokens, error) {
	sub, err := json.Marshal(tokenData)
	if err != nil {
		return domain.Tokens{}, err
	}
	access, err := s.createToken(string(sub), scopeAccessToken)
	if err != nil {
		return domain.Tokens{}, err
	}
	refresh, err := s.createToken(string(sub), scopeRefreshToken)
	if err != nil {
		return domain.Tokens{}, err
	}
	return domain.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) parseToken(raw string) (*tokenClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return &claims, nil
}

func (s *AuthService) ValidateToken(accessToken string) (domain.TokenData, error) {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return domain.TokenData{}, err
	}
	var tokenData domain.TokenData
	if err := json.Unmarshal([]byte(claims.Subject), &tokenData); err != nil {
		return domain.TokenData{}, domain.ErrInvalidToken
	}
	return tokenData, nil
}

// RefreshTokens перевыпускает пару. Access-токен здесь не принимается:
// единственный дискриминатор — scope.
func (s *AuthService) RefreshTokens(refreshToken string) (domain.Tokens, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return domain.Tokens{}, err
	}
	if claims.Scope != scopeRefreshToken {
		return domain.Tokens{}, domain.ErrInvalidToken
	}
	var tokenData domain.TokenData
	if err := json.Unmarshal([]byte(claims.Subject), &tokenData); err != nil {
		return domain.Tokens{}, domain.ErrInvalidToken
	}
	return s.CreateTokens(tokenData)
}
