package db

import "time"

const (
	maxUsernameLength       = 20
	maxTagNameLength        = 64
	maxTagDescriptionLength = 1028
	maxTextLength           = 2048
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:20;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Tag struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:64;uniqueIndex;not null"`
	Description *string   `gorm:"size:1028"`
	CreatorID   uint      `gorm:"index;not null"`
	Creator     User      `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Prompt struct {
	ID                 uint      `gorm:"primaryKey"`
	Text               string    `gorm:"size:2048;not null"`
	ChooseableInRandom bool      `gorm:"not null;default:false;index"`
	CreatorID          *uint     `gorm:"index"`
	Creator            *User     `gorm:"constraint:OnDelete:SET NULL"`
	Tags               []Tag     `gorm:"many2many:prompt_tags"`
	CreatedAt          time.Time `gorm:"not null"`
}

// PromptTag is the prompt_tags join table.
type PromptTag struct {
	PromptID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey;index"`
}

type GameText struct {
	ID                uint    `gorm:"primaryKey"`
	Text              string  `gorm:"size:2048;not null"`
	GeneratorPromptID *uint   `gorm:"index"`
	GeneratorPrompt   *Prompt `gorm:"constraint:OnDelete:SET NULL"`
}

type SingleplayerMatch struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"index;not null"`
	User            User      `gorm:"constraint:OnDelete:RESTRICT"`
	GameTextID      uint      `gorm:"index;not null"`
	GameText        GameText  `gorm:"constraint:OnDelete:RESTRICT"`
	Timestamp       time.Time `gorm:"autoCreateTime;not null;index"`
	DurationSeconds float64   `gorm:"not null"`
}

// TagNames returns the names of the prompt's loaded tags.
func (p Prompt) TagNames() []string {
	if len(p.Tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// CreatorName is empty when the prompt has no creator or it was not loaded.
func (p Prompt) CreatorName() string {
	if p.Creator == nil {
		return ""
	}
	return p.Creator.Username
}
