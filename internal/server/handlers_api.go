package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"maxclack/internal/db"

	"github.com/gin-gonic/gin"
)

var createPromptMessages = bindMessages{
	"Text": {
		"required": "text is required",
		"max":      "text must be 2048 characters or fewer",
	},
	"Creator": {
		"required": "creator is required",
		"max":      "creator must be 20 characters or fewer",
	},
	"Tags": {
		"required": "tag names must not be empty",
		"max":      "tag names must be 64 characters or fewer",
	},
}

func (s *Server) handleRandomPrompt(c *gin.Context) {
	tags := c.QueryArray("tag")
	if len(tags) > s.cfg.MaxRandomTags {
		writeError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d tags may be given", s.cfg.MaxRandomTags))
		return
	}
	for i, tag := range tags {
		tags[i] = strings.TrimSpace(tag)
	}
	if !s.requireDB(c) {
		return
	}
	prompt, err := db.RandomPrompt(c.Request.Context(), s.db, tags)
	if errors.Is(err, db.ErrNoEligiblePrompt) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.writeDBError(c, err, "failed to select prompt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": newPromptView(prompt)})
}

func (s *Server) handleGetPrompt(c *gin.Context) {
	var uri promptURI
	if !bindURI(c, &uri) {
		return
	}
	if !s.requireDB(c) {
		return
	}
	prompt, err := db.FindPrompt(c.Request.Context(), s.db, uri.ID)
	if err != nil {
		s.writeDBError(c, err, "failed to load prompt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": newPromptView(prompt)})
}

func (s *Server) handleCreatePrompt(c *gin.Context) {
	var req createPromptRequest
	if !decodeJSON(c, &req) {
		return
	}
	if len(req.Tags) > s.cfg.MaxPromptTags {
		writeError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d tags may be given", s.cfg.MaxPromptTags))
		return
	}
	req.normalize()
	if !validateRequest(c, &req, createPromptMessages, "invalid prompt") {
		return
	}
	if !s.requireDB(c) {
		return
	}
	prompt, err := db.CreatePrompt(c.Request.Context(), s.db, db.NewPrompt{
		Text:    req.Text,
		Creator: req.Creator,
		Tags:    req.Tags,
	})
	if err != nil {
		s.writeDBError(c, err, "failed to create prompt")
		return
	}
	s.log.Info("prompt created", "prompt_id", prompt.ID, "creator", req.Creator, "tags", len(prompt.Tags))
	c.JSON(http.StatusCreated, gin.H{"prompt": newPromptView(prompt)})
}

// writeDBError maps repository errors onto status codes. Anything
// unclassified is logged and reported as a 500 with fallback.
func (s *Server) writeDBError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, db.ErrUnknownUser):
		writeError(c, http.StatusBadRequest, "unknown user")
	case errors.Is(err, db.ErrInvalidName):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrPromptNotFound):
		writeError(c, http.StatusNotFound, "prompt not found")
	case errors.Is(err, db.ErrConflict):
		writeError(c, http.StatusConflict, "concurrent update, retry the request")
	default:
		s.log.Error(fallback, "error", err, requestIDKey, c.GetString(requestIDKey))
		writeError(c, http.StatusInternalServerError, fallback)
	}
}
