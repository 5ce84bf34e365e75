package domain

// TokenService выпускает, проверяет и обновляет пары bearer-токенов.
// Access и refresh различаются только полем scope.
type TokenService interface {
	CreateTokens(tokenData TokenData) (Tokens, error)
	ValidateToken(accessToken string) (TokenData, error)
	RefreshTokens(refreshToken string) (Tokens, error)
}
