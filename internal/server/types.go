package server

import (
	"strings"
	"time"

	"maxclack/internal/db"
)

type createPromptRequest struct {
	Text    string   `json:"text" binding:"required,max=2048"`
	Creator string   `json:"creator" binding:"required,max=20"`
	Tags    []string `json:"tags" binding:"omitempty,dive,required,max=64"`
}

func (r *createPromptRequest) normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.Creator = strings.TrimSpace(r.Creator)
	for i, tag := range r.Tags {
		r.Tags[i] = strings.TrimSpace(tag)
	}
}

type promptURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

type userRequest struct {
	Username string `json:"username" binding:"required,max=20"`
}

func (r *userRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type userURI struct {
	Username string `uri:"username" binding:"required,max=20"`
}

type matchRequest struct {
	Username        string  `json:"username" binding:"required,max=20"`
	Text            string  `json:"text" binding:"required,max=2048"`
	DurationSeconds float64 `json:"duration_seconds" binding:"gt=0"`
	PromptID        *uint   `json:"prompt_id" binding:"omitempty,min=1"`
}

func (r *matchRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Text = strings.TrimSpace(r.Text)
}

type promptView struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Creator string   `json:"creator,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func newPromptView(prompt db.Prompt) promptView {
	return promptView{
		ID:      prompt.ID,
		Text:    prompt.Text,
		Creator: prompt.CreatorName(),
		Tags:    prompt.TagNames(),
	}
}

type userView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type matchView struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Text            string    `json:"text"`
	PromptID        *uint     `json:"prompt_id,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
}

func newMatchView(match db.SingleplayerMatch) matchView {
	return matchView{
		ID:              match.ID,
		Username:        match.User.Username,
		Text:            match.GameText.Text,
		PromptID:        match.GameText.GeneratorPromptID,
		DurationSeconds: match.DurationSeconds,
		Timestamp:       match.Timestamp.UTC(),
	}
}
