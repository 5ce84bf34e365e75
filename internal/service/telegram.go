package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/sxtnflur/ar-api/internal/domain"
)

// TelegramService проверяет init_data мини-аппа и строит ссылки запуска.
type TelegramService struct {
	botToken    string
	botUsername string
}

func NewTelegramService(botToken, botUsername string) *TelegramService {
	return &TelegramService{botToken: botToken, botUsername: botUsername}
}

// VerifyInitData проверяет подпись init_data и возвращает профиль пользователя.
// Любая ошибка разбора или несовпадение подписи схлопываются в ErrInvalidInitData.
func (s *TelegramService) VerifyInitData(initData string) (domain.TelegramUser, error) {
	vals := map[string]string{}
	for _, pair := range strings.Split(initData, "&") {
		key, rawValue, ok := strings.Cut(pair, "=")
		if !ok {
			return domain.TelegramUser{}, domain.ErrInvalidInitData
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return domain.TelegramUser{}, domain.ErrInvalidInitData
		}
		vals[key] = value
	}

	gotHash, ok := vals["hash"]
	if !ok {
		return domain.TelegramUser{}, domain.ErrInvalidInitData
	}

	// data_check_string: все пары кроме hash, отсортированные по ключу
	keys := make([]string, 0, len(vals))
	for k := range vals {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+vals[k])
	}
	dataCheckString := strings.Join(lines, "\n")

	// secret = HMAC-SHA256(key="WebAppData", msg=bot_token)
	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(s.botToken))
	secretKey := secretMAC.Sum(nil)

	h := hmac.New(sha256.New, secretKey)
	h.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(h.Sum(nil))

	// Сравнение за константное время
	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return domain.TelegramUser{}, domain.ErrInvalidInitData
	}

	var user domain.TelegramUser
	if err := json.Unmarshal([]byte(vals["user"]), &user); err != nil {
		return domain.TelegramUser{}, domain.ErrInvalidInitData
	}
	return user, nil
}

// CreateStartupURL строит deep link для открытия мини-аппа с полезной нагрузкой.
func (s *TelegramService) CreateStartupURL(payload string) string {
	return fmt.Sprintf("https://t.me/%s?startapp=%s", s.botUsername, url.QueryEscape(payload))
}
