// ABOUTME: Gin middleware for logging, recovery, sessions and access control.
// ABOUTME: requireLogin redirects anonymous users; ownedNote hides other users' notes.

package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/session"
	"go.uber.org/zap"
)

const (
	ctxUser = "notes.user"
	ctxNote = "notes.note"
)

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func currentNote(c *gin.Context) *models.Note {
	return c.MustGet(ctxNote).(*models.Note)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if u := currentUser(c); u != nil {
			fields = append(fields, zap.String("user", u.Username))
		}
		s.logger.Info("request", fields...)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.serverError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// loadUser resolves the session cookie to a user. Stale or unknown sessions
// leave the request anonymous.
func (s *Server) loadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := s.sessions.Lookup(token)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				s.logger.Warn("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		user, err := db.GetUserByID(s.db, userID)
		if err != nil {
			if !errors.Is(err, db.ErrUserNotFound) {
				s.logger.Warn("session user lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(ctxUser, user)
		c.Next()
	}
}

// requireLogin redirects anonymous users to the login page with next set to
// the requested URL.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, loginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ownedNote loads the note named by :slug. Missing notes and notes owned by
// someone else both answer 404 so other users' slugs are not disclosed.
func (s *Server) ownedNote() gin.HandlerFunc {
	return func(c *gin.Context) {
		note, err := db.GetNoteBySlug(s.db, c.Param("slug"))
		if errors.Is(err, db.ErrNoteNotFound) {
			s.notFound(c)
			return
		}
		if err != nil {
			s.serverError(c, err)
			return
		}
		if !note.OwnedBy(currentUser(c)) {
			s.notFound(c)
			return
		}
		c.Set(ctxNote, note)
		c.Next()
	}
}
