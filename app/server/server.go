package server

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"CustomsRAG/app/session"
)

const sessionCookie = "customsrag_session"

// Answerer is the single operation the front end needs from the assistant.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Server is the interactive web front end: one text input, one Ask action,
// the latest answer and the session's full history in insertion order. Each
// request blocks until the answer is generated.
type Server struct {
	echo      *echo.Echo
	assistant Answerer
	sessions  *session.Store
	template  *template.Template
	docCount  int
}

func New(a Answerer, sessions *session.Store, docCount int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		assistant: a,
		sessions:  sessions,
		template:  template.Must(template.New("index").Parse(indexHTML)),
		docCount:  docCount,
	}

	e.GET("/", s.index)
	e.POST("/ask", s.ask)
	e.POST("/api/ask", s.apiAsk)
	e.GET("/api/history", s.apiHistory)

	return s
}

func (s *Server) Start(addr string) error {
	log.Printf("🌐 Listening on %s", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

type pageData struct {
	DocCount int
	Answer   string
	Warning  string
	History  []session.QA
}

func (s *Server) render(c echo.Context, data pageData) error {
	var b strings.Builder
	if err := s.template.Execute(&b, data); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, b.String())
}

func (s *Server) index(c echo.Context) error {
	return s.render(c, pageData{
		DocCount: s.docCount,
		History:  s.sessions.History(s.sessionID(c)),
	})
}

func (s *Server) ask(c echo.Context) error {
	id := s.sessionID(c)
	query := strings.TrimSpace(c.FormValue("question"))

	if query == "" {
		log.Printf("⚠️ Empty question submitted")
		return s.render(c, pageData{
			DocCount: s.docCount,
			Warning:  "Please enter a question.",
			History:  s.sessions.History(id),
		})
	}

	answer, err := s.assistant.Answer(c.Request().Context(), query)
	if err != nil {
		log.Printf("❌ Answer failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	s.sessions.Append(id, session.QA{Question: query, Answer: answer, AskedAt: time.Now()})

	return s.render(c, pageData{
		DocCount: s.docCount,
		Answer:   answer,
		History:  s.sessions.History(id),
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) apiAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	query := strings.TrimSpace(req.Question)
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question must not be empty")
	}

	answer, err := s.assistant.Answer(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	s.sessions.Append(s.sessionID(c), session.QA{Question: query, Answer: answer, AskedAt: time.Now()})

	return c.JSON(http.StatusOK, askResponse{Question: query, Answer: answer})
}

func (s *Server) apiHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, s.sessions.History(s.sessionID(c)))
}
