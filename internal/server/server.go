package server

import (
	"log/slog"
	"net/http"

	"maxclack/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

type Server struct {
	db  *gorm.DB
	cfg config.Config
	log *slog.Logger
}

// New builds the HTTP server. conn may be nil, in which case every
// database-backed route answers 503 after validating its input.
func New(conn *gorm.DB, cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		db:  conn,
		cfg: cfg,
		log: log,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), s.accessLog())

	router.GET("/", s.handleHello)
	router.GET("/healthz", s.handleHealth)
	router.GET("/prompt/random", s.handleRandomPrompt)
	router.GET("/prompt/:id", s.handleGetPrompt)
	router.POST("/prompt", s.handleCreatePrompt)
	router.POST("/user", s.handleUpsertUser)
	router.GET("/user/:username/matches", s.handleListMatches)
	router.POST("/match", s.handleRecordMatch)

	return cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	})(router)
}

func (s *Server) requireDB(c *gin.Context) bool {
	if s.db == nil {
		writeError(c, http.StatusServiceUnavailable, "database not configured")
		return false
	}
	return true
}
