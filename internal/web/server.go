// ABOUTME: HTTP server wiring for the notes web app.
// ABOUTME: Builds the gin engine, registers routes and runs graceful shutdown.

package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/harper/notes/internal/session"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCookieName = "notes_session"
	shutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	DB       *sql.DB
	Sessions *session.Store
	Logger   *zap.Logger

	// Renderer overrides the embedded templates.
	Renderer render.HTMLRender

	CookieName    string
	SecureCookies bool
}

type Server struct {
	db       *sql.DB
	sessions *session.Store
	logger   *zap.Logger
	markdown *Markdown
	engine   *gin.Engine

	cookieName    string
	secureCookies bool
}

func New(opts Options) (*Server, error) {
	if opts.DB == nil || opts.Sessions == nil {
		return nil, errors.New("web: DB and Sessions are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := opts.Renderer
	if renderer == nil {
		tr, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		renderer = tr
	}

	s := &Server{
		db:            opts.DB,
		sessions:      opts.Sessions,
		logger:        logger,
		markdown:      NewMarkdown(logger),
		cookieName:    opts.CookieName,
		secureCookies: opts.SecureCookies,
	}
	if s.cookieName == "" {
		s.cookieName = defaultCookieName
	}

	engine := gin.New()
	engine.HTMLRender = renderer
	engine.Use(s.recovery(), s.requestLogger(), s.loadUser())
	engine.NoRoute(s.notFound)
	s.engine = engine

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET(Path(RouteHome), s.handleHome)

	r.GET(Path(RouteLogin), s.handleLoginForm)
	r.POST(Path(RouteLogin), s.handleLogin)
	r.GET(Path(RouteLogout), s.handleLogout)
	r.POST(Path(RouteLogout), s.handleLogout)
	r.GET(Path(RouteSignup), s.handleSignupForm)
	r.POST(Path(RouteSignup), s.handleSignup)

	authed := r.Group("", s.requireLogin())
	authed.GET(Path(RouteNotesList), s.handleNotesList)
	authed.GET(Path(RouteNotesAdd), s.handleNoteAddForm)
	authed.POST(Path(RouteNotesAdd), s.handleNoteAdd)
	authed.GET(Path(RouteNotesDone), s.handleSuccess)

	owned := authed.Group("", s.ownedNote())
	owned.GET(Path(RouteNoteDetail), s.handleNoteDetail)
	owned.GET(Path(RouteNoteEdit), s.handleNoteEditForm)
	owned.POST(Path(RouteNoteEdit), s.handleNoteEdit)
	owned.GET(Path(RouteNoteDelete), s.handleNoteDeleteConfirm)
	owned.POST(Path(RouteNoteDelete), s.handleNoteDelete)
	owned.DELETE(Path(RouteNoteDelete), s.handleNoteDelete)
}

// Handler returns the HTTP handler for the app.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// render adds the current user to the template context.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = currentUser(c)
	c.HTML(status, name, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "errors/404.html", nil)
	c.Abort()
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	s.render(c, http.StatusInternalServerError, "errors/500.html", nil)
	c.Abort()
}
