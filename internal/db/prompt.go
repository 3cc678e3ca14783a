package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// NewPrompt is the input for CreatePrompt. Creator must name an existing user.
type NewPrompt struct {
	Text               string
	Creator            string
	Tags               []string
	ChooseableInRandom bool
}

// randomOffset picks the row to return out of n matching prompts.
var randomOffset = func(n int64) int64 {
	return rand.Int64N(n)
}

// RandomPrompt returns one prompt chosen uniformly among those marked
// chooseable_in_random. When tagNames is non-empty the prompt must carry at
// least one of them.
func RandomPrompt(ctx context.Context, conn *gorm.DB, tagNames []string) (Prompt, error) {
	tx := conn.WithContext(ctx)
	var count int64
	if err := eligiblePrompts(tx, tagNames).Count(&count).Error; err != nil {
		return Prompt{}, err
	}
	if count == 0 {
		return Prompt{}, ErrNoEligiblePrompt
	}
	var prompts []Prompt
	err := preloadPrompt(eligiblePrompts(tx, tagNames)).
		Order("prompts.id").
		Offset(int(randomOffset(count))).
		Limit(1).
		Find(&prompts).Error
	if err != nil {
		return Prompt{}, err
	}
	if len(prompts) == 0 {
		return Prompt{}, ErrNoEligiblePrompt
	}
	return prompts[0], nil
}

// FindPrompt loads a prompt with its creator and tags.
func FindPrompt(ctx context.Context, conn *gorm.DB, id uint) (Prompt, error) {
	var prompt Prompt
	if err := preloadPrompt(conn.WithContext(ctx)).First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Prompt{}, fmt.Errorf("prompt %d: %w", id, ErrPromptNotFound)
		}
		return Prompt{}, err
	}
	return prompt, nil
}

// CreatePrompt stores a prompt for an existing creator. Missing tags are
// created and attributed to that creator. Nothing is written when the
// creator is unknown.
func CreatePrompt(ctx context.Context, conn *gorm.DB, input NewPrompt) (Prompt, error) {
	var prompt Prompt
	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		creator, err := FindUser(tx, input.Creator)
		if err != nil {
			return err
		}
		prompt, err = createPrompt(tx, creator, input.Text, input.Tags, input.ChooseableInRandom)
		return err
	})
	if err != nil {
		return Prompt{}, err
	}
	return prompt, nil
}

func createPrompt(tx *gorm.DB, creator User, text string, tagNames []string, chooseable bool) (Prompt, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return Prompt{}, errors.New("prompt text is required")
	}
	if utf8.RuneCountInString(clean) > maxTextLength {
		return Prompt{}, fmt.Errorf("prompt text must be %d characters or fewer", maxTextLength)
	}
	tags, err := GetOrCreateTags(tx, tagNames, creator)
	if err != nil {
		return Prompt{}, err
	}
	slices.SortFunc(tags, func(a, b Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
	prompt := Prompt{
		Text:               clean,
		ChooseableInRandom: chooseable,
		CreatorID:          &creator.ID,
		Tags:               tags,
	}
	if err := tx.Omit("Creator", "Tags.*").Create(&prompt).Error; err != nil {
		return Prompt{}, err
	}
	prompt.Creator = &creator
	return prompt, nil
}

func eligiblePrompts(tx *gorm.DB, tagNames []string) *gorm.DB {
	query := tx.Model(&Prompt{}).Where("prompts.chooseable_in_random = ?", true)
	if len(tagNames) == 0 {
		return query
	}
	tagged := tx.Table("prompt_tags").
		Select("prompt_tags.prompt_id").
		Joins("JOIN tags ON tags.id = prompt_tags.tag_id").
		Where("tags.name IN ?", tagNames)
	return query.Where("prompts.id IN (?)", tagged)
}

func preloadPrompt(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Creator").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name")
	})
}
