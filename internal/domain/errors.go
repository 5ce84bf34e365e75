package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInitData — init_data не прошла разбор или проверку подписи.
	// Причина намеренно не раскрывается наружу.
	ErrInvalidInitData = errors.New("init data is invalid")

	// ErrInvalidToken — токен структурно невалиден, подпись не сошлась
	// или scope не подходит для операции.
	ErrInvalidToken = errors.New("token is invalid")

	// ErrExpiredToken — токен валиден, но срок действия истек.
	ErrExpiredToken = errors.New("token is expired")
)

// NotFoundError — запись не существует либо принадлежит другому пользователю.
// Эти два случая для вызывающего неразличимы.
type NotFoundError struct {
	Entity string
	Field  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found by %s", e.Entity, e.Field)
}

func NewNotFound(entity, field string) error {
	return &NotFoundError{Entity: entity, Field: field}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
