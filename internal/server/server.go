package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/pipeline"
)

// Factory builds a fresh pipeline for one request. The returned func releases
// its collaborators.
type Factory func(ctx context.Context) (*pipeline.Pipeline, func() error)

// Server exposes the pipeline over HTTP.
type Server struct {
	factory     Factory
	defaultLang string
	// mu serializes runs; collaborators are never shared between requests.
	mu     sync.Mutex
	engine *gin.Engine
}

type runRequest struct {
	Question string `json:"question" form:"question"`
	Language string `json:"language" form:"language"`
}

type pageData struct {
	Question  string
	Language  string
	Languages []language.Language
	Report    *pipeline.Report
}

// New creates a server. defaultLang preselects the language control.
func New(factory Factory, defaultLang string) *Server {
	if !language.IsSupported(defaultLang) {
		defaultLang = language.Default
	}
	s := &Server{factory: factory, defaultLang: defaultLang}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	router.GET("/", s.handleIndex)
	router.POST("/run", s.handleFormRun)
	router.POST("/api/run", s.handleAPIRun)
	router.GET("/api/languages", s.handleLanguages)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", s.page(runRequest{Language: s.defaultLang}, nil))
}

func (s *Server) handleFormRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index", s.page(runRequest{Language: s.defaultLang}, nil))
		return
	}
	req = s.normalize(req)
	var rep *pipeline.Report
	if strings.TrimSpace(req.Question) != "" {
		r := s.run(c.Request.Context(), req)
		rep = &r
	}
	c.HTML(http.StatusOK, "index", s.page(req, rep))
}

func (s *Server) handleAPIRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	req = s.normalize(req)
	c.JSON(http.StatusOK, s.run(c.Request.Context(), req))
}

func (s *Server) handleLanguages(c *gin.Context) {
	type item struct {
		Code       string `json:"code"`
		Name       string `json:"name"`
		NativeName string `json:"native_name"`
	}
	langs := language.GetSupportedLanguages()
	out := make([]item, 0, len(langs))
	for _, l := range langs {
		out = append(out, item{Code: l.Code, Name: l.Name, NativeName: l.NativeName})
	}
	c.JSON(http.StatusOK, gin.H{"default": s.defaultLang, "languages": out})
}

func (s *Server) normalize(req runRequest) runRequest {
	req.Language = strings.TrimSpace(req.Language)
	if req.Language == "" {
		req.Language = s.defaultLang
	} else if lang, ok := language.Resolve(req.Language); ok {
		req.Language = lang.Code
	}
	return req
}

func (s *Server) run(ctx context.Context, req runRequest) pipeline.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, release := s.factory(ctx)
	defer func() {
		if release == nil {
			return
		}
		if err := release(); err != nil {
			logger.Warn("Failed to release collaborators", "error", err)
		}
	}()
	return p.Run(ctx, req.Question, req.Language)
}

func (s *Server) page(req runRequest, rep *pipeline.Report) pageData {
	return pageData{
		Question:  req.Question,
		Language:  req.Language,
		Languages: language.GetSupportedLanguages(),
		Report:    rep,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
}
