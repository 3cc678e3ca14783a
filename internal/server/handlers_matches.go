package server

import (
	"errors"
	"net/http"

	"maxclack/internal/db"

	"github.com/gin-gonic/gin"
)

var userMessages = bindMessages{
	"Username": {
		"required": "username is required",
		"max":      "username must be 20 characters or fewer",
	},
}

var matchMessages = bindMessages{
	"Username": userMessages["Username"],
	"Text": {
		"required": "text is required",
		"max":      "text must be 2048 characters or fewer",
	},
	"DurationSeconds": {
		"gt": "duration_seconds must be positive",
	},
	"PromptID": {
		"min": "prompt_id must be positive",
	},
}

func (s *Server) handleUpsertUser(c *gin.Context) {
	var req userRequest
	if !decodeJSON(c, &req) {
		return
	}
	req.normalize()
	if !validateRequest(c, &req, userMessages, "invalid user") {
		return
	}
	if !s.requireDB(c) {
		return
	}
	user, err := db.GetOrCreateUser(s.db.WithContext(c.Request.Context()), req.Username)
	if err != nil {
		s.writeDBError(c, err, "failed to save user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView{ID: user.ID, Username: user.Username}})
}

func (s *Server) handleRecordMatch(c *gin.Context) {
	var req matchRequest
	if !decodeJSON(c, &req) {
		return
	}
	req.normalize()
	if !validateRequest(c, &req, matchMessages, "invalid match") {
		return
	}
	if !s.requireDB(c) {
		return
	}
	match, err := db.RecordMatch(c.Request.Context(), s.db, db.NewMatch{
		Username:        req.Username,
		Text:            req.Text,
		DurationSeconds: req.DurationSeconds,
		PromptID:        req.PromptID,
	})
	if errors.Is(err, db.ErrPromptNotFound) {
		writeError(c, http.StatusBadRequest, "unknown prompt")
		return
	}
	if err != nil {
		s.writeDBError(c, err, "failed to record match")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": newMatchView(match)})
}

func (s *Server) handleListMatches(c *gin.Context) {
	var uri userURI
	if !bindURI(c, &uri) {
		return
	}
	var query limitQuery
	if !bindQuery(c, &query) {
		return
	}
	if !s.requireDB(c) {
		return
	}
	limit := resolveLimit(query.Limit, s.cfg.DefaultMatchLimit, s.cfg.MaxMatchLimit)
	matches, err := db.ListMatches(c.Request.Context(), s.db, uri.Username, limit)
	if errors.Is(err, db.ErrUnknownUser) {
		writeError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.writeDBError(c, err, "failed to load matches")
		return
	}
	views := make([]matchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, newMatchView(match))
	}
	c.JSON(http.StatusOK, gin.H{"matches": views})
}
