package db

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// GetOrCreateUser returns the user with the given username, creating it when
// no such row exists. The unique index on username backs the lookup.
func GetOrCreateUser(tx *gorm.DB, username string) (User, error) {
	name, err := normalizeKey(username, maxUsernameLength)
	if err != nil {
		return User{}, fmt.Errorf("username: %w", err)
	}
	var user User
	if err := tx.Where(User{Username: name}).FirstOrCreate(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return User{}, fmt.Errorf("user %q: %w", name, ErrConflict)
		}
		return User{}, err
	}
	return user, nil
}

// FindUser looks a user up by username without creating it.
func FindUser(tx *gorm.DB, username string) (User, error) {
	name, err := normalizeKey(username, maxUsernameLength)
	if err != nil {
		return User{}, fmt.Errorf("username: %w", err)
	}
	var user User
	if err := tx.Where("username = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, fmt.Errorf("user %q: %w", name, ErrUnknownUser)
		}
		return User{}, err
	}
	return user, nil
}

func normalizeKey(raw string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidName, maxLen)
	}
	return trimmed, nil
}
