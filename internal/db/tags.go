package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GetOrCreateTag returns the tag with the given name, creating it with
// creator as its owner when missing. An existing tag keeps its creator.
func GetOrCreateTag(tx *gorm.DB, name string, creator User) (Tag, error) {
	if creator.ID == 0 {
		return Tag{}, errors.New("tag creator is required")
	}
	clean, err := normalizeKey(name, maxTagNameLength)
	if err != nil {
		return Tag{}, fmt.Errorf("tag name: %w", err)
	}
	var tag Tag
	if err := tx.Where(Tag{Name: clean}).Attrs(Tag{CreatorID: creator.ID}).FirstOrCreate(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			return Tag{}, fmt.Errorf("tag %q: %w", clean, ErrConflict)
		}
		return Tag{}, err
	}
	return tag, nil
}

// GetOrCreateTags resolves every name in order, skipping repeats.
func GetOrCreateTags(tx *gorm.DB, names []string, creator User) ([]Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	tags := make([]Tag, 0, len(names))
	seen := make(map[uint]struct{}, len(names))
	for _, name := range names {
		tag, err := GetOrCreateTag(tx, name, creator)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}
