package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewMatch struct {
	Username        string
	Text            string
	DurationSeconds float64
	PromptID        *uint
}

// RecordMatch stores the finished game's text and the user's result.
func RecordMatch(ctx context.Context, conn *gorm.DB, input NewMatch) (SingleplayerMatch, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return SingleplayerMatch{}, errors.New("game text is required")
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return SingleplayerMatch{}, fmt.Errorf("game text must be %d characters or fewer", maxTextLength)
	}
	if input.DurationSeconds <= 0 {
		return SingleplayerMatch{}, errors.New("duration must be positive")
	}

	var match SingleplayerMatch
	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := FindUser(tx, input.Username)
		if err != nil {
			return err
		}
		if input.PromptID != nil {
			var found int64
			if err := tx.Model(&Prompt{}).Where("id = ?", *input.PromptID).Count(&found).Error; err != nil {
				return err
			}
			if found == 0 {
				return fmt.Errorf("prompt %d: %w", *input.PromptID, ErrPromptNotFound)
			}
		}
		gameText := GameText{
			Text:              text,
			GeneratorPromptID: input.PromptID,
		}
		if err := tx.Omit(clause.Associations).Create(&gameText).Error; err != nil {
			return err
		}
		match = SingleplayerMatch{
			UserID:          user.ID,
			GameTextID:      gameText.ID,
			DurationSeconds: input.DurationSeconds,
		}
		if err := tx.Omit(clause.Associations).Create(&match).Error; err != nil {
			return err
		}
		match.User = user
		match.GameText = gameText
		return nil
	})
	if err != nil {
		return SingleplayerMatch{}, err
	}
	return match, nil
}

// ListMatches returns a user's most recent matches, newest first.
func ListMatches(ctx context.Context, conn *gorm.DB, username string, limit int) ([]SingleplayerMatch, error) {
	tx := conn.WithContext(ctx)
	user, err := FindUser(tx, username)
	if err != nil {
		return nil, err
	}
	var matches []SingleplayerMatch
	err = tx.Preload("GameText").
		Where("user_id = ?", user.ID).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "timestamp"}, Desc: true},
			{Column: clause.Column{Name: "id"}, Desc: true},
		}}).
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].User = user
	}
	return matches, nil
}
