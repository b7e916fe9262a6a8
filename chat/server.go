// Package chat is the HTTP chat surface over the engine: per-session
// transcripts, persona selection per message, and a rendered benchmark
// report page.
package chat

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/engine"
)

// Message is one chat turn
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// session is one browser conversation. Transcripts live in memory only.
type session struct {
	mu       sync.Mutex
	messages []Message
}

func (s *session) append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *session) transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Asker answers one question for one user. *engine.Brain is the production
// implementation.
type Asker interface {
	Ask(ctx context.Context, question, userID string) (engine.Answer, error)
}

// Server serves the chat API. Each request is an independent call into the
// brain; sessions only hold display history.
type Server struct {
	brain      Asker
	reportPath string
	logger     log.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// ServerOption configures the Server
type ServerOption func(*Server)

// WithReportPath points /report at a benchmark markdown summary on disk
func WithReportPath(path string) ServerOption {
	return func(s *Server) {
		s.reportPath = path
	}
}

// WithServerLogger sets the logger
func WithServerLogger(logger log.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the chat server
func NewServer(brain Asker, opts ...ServerOption) *Server {
	s := &Server{
		brain:    brain,
		logger:   log.NewNoOpLogger(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the echo instance with all routes registered
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/personas", s.handlePersonas)
	api.POST("/sessions", s.handleCreateSession)
	api.POST("/chat", s.handleChat)
	api.GET("/sessions/:id/messages", s.handleTranscript)
	api.DELETE("/sessions/:id/messages", s.handleClear)

	e.GET("/report", s.handleReport)

	return e
}

// Start runs the server until the listener fails
func (s *Server) Start(addr string) error {
	s.logger.Info("chat server listening on %s", addr)
	return s.Handler().Start(addr)
}

func (s *Server) handlePersonas(c echo.Context) error {
	return c.JSON(http.StatusOK, rag.DefaultPersonas())
}

func (s *Server) handleCreateSession(c echo.Context) error {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{}
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Question  string `json:"question"`
}

type chatResponse struct {
	Answer       string          `json:"answer"`
	Destination  rag.Destination `json:"destination"`
	UsedFallback bool            `json:"used_fallback"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question must not be empty")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id must not be empty")
	}

	sess, ok := s.session(req.SessionID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}

	sess.append(Message{Role: "user", Content: req.Question, Timestamp: time.Now()})

	answer, err := s.brain.Ask(c.Request().Context(), req.Question, req.UserID)
	if err != nil {
		if errors.Is(err, rag.ErrUnknownPersona) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown persona: "+req.UserID)
		}
		s.logger.Error("ask failed: %v", err)
		// the error lands in the transcript as a chat bubble, like any answer
		sess.append(Message{Role: "assistant", Content: "Error: " + err.Error(), Timestamp: time.Now()})
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	sess.append(Message{Role: "assistant", Content: answer.Text, Timestamp: time.Now()})
	return c.JSON(http.StatusOK, chatResponse{
		Answer:       answer.Text,
		Destination:  answer.Destination,
		UsedFallback: answer.UsedFallback,
	})
}

func (s *Server) handleTranscript(c echo.Context) error {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}
	return c.JSON(http.StatusOK, sess.transcript())
}

func (s *Server) handleClear(c echo.Context) error {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}
	sess.clear()
	return c.NoContent(http.StatusNoContent)
}
