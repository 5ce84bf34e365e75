package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sxtnflur/ar-api/internal/domain"
)

type InitDataVerifier interface {
	VerifyInitData(initData string) (domain.TelegramUser, error)
}

// AuthUseCase: верификация init_data -> upsert пользователя -> выпуск токенов.
type AuthUseCase struct {
	verifier InitDataVerifier
	tokens   domain.TokenService
	uow      domain.UnitOfWork
	log      *zap.Logger
}

func NewAuthUseCase(verifier InitDataVerifier, tokens domain.TokenService,
	uow domain.UnitOfWork, log *zap.Logger) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, tokens: tokens, uow: uow, log: log}
}

// CreateTokensByInitData выпускает пару токенов по init_data из Telegram.
// Ошибка верификации обрывает поток до любой записи в БД.
func (u *AuthUseCase) CreateTokensByInitData(ctx context.Context, initData string) (domain.Tokens, error) {
	user, err := u.verifier.VerifyInitData(initData)
	if err != nil {
		return domain.Tokens{}, err
	}

	fullName := strings.TrimSpace(user.FirstName + " " + user.LastName)

	var userID int64
	err = u.uow.Do(ctx, func(r domain.Repos) error {
		userID, err = r.Users.UpsertUser(ctx, user.ID, user.Username, fullName)
		return err
	})
	if err != nil {
		u.log.Error("upsert user", zap.Int64("telegram_id", user.ID), zap.Error(err))
		return domain.Tokens{}, err
	}

	return u.tokens.CreateTokens(domain.TokenData{
		UserID:     userID,
		TelegramID: user.ID,
	})
}
