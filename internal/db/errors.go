package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrNoEligiblePrompt = errors.New("no prompt matches")
	ErrUnknownUser      = errors.New("user not found")
	ErrInvalidName      = errors.New("invalid name")
	ErrConflict         = errors.New("conflicting write")
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
