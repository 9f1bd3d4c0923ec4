// ABOUTME: Handlers for signup, login and logout.
// ABOUTME: Login issues a badger-backed session cookie; logout revokes it.

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleLoginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "users/login.html", gin.H{
		"form": &forms.LoginForm{Errors: forms.Errors{}},
		"next": c.Query("next"),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	form := &forms.LoginForm{}
	_ = c.ShouldBind(form)
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	user, err := form.Authenticate(s.db)
	if err != nil {
		s.formError(c, "users/login.html", gin.H{"form": form, "next": next}, err)
		return
	}
	if err := s.startSession(c, user); err != nil {
		s.serverError(c, err)
		return
	}

	if !safeNext(next) {
		next = Reverse(RouteHome)
	}
	c.Redirect(http.StatusFound, next)
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(s.cookieName); err == nil {
		if err := s.sessions.Destroy(token); err != nil {
			s.logger.Warn("failed to destroy session", zap.Error(err))
		}
	}
	s.clearSessionCookie(c)
	c.Set(ctxUser, nil)
	s.render(c, http.StatusOK, "users/logout.html", nil)
}

func (s *Server) handleSignupForm(c *gin.Context) {
	s.render(c, http.StatusOK, "users/signup.html", gin.H{
		"form": &forms.SignupForm{Errors: forms.Errors{}},
	})
}

func (s *Server) handleSignup(c *gin.Context) {
	form := &forms.SignupForm{}
	_ = c.ShouldBind(form)

	user, err := form.Save(s.db)
	if err != nil {
		s.formError(c, "users/signup.html", gin.H{"form": form}, err)
		return
	}
	s.logger.Info("user registered", zap.String("user", user.Username))
	c.Redirect(http.StatusFound, Reverse(RouteLogin))
}

func (s *Server) startSession(c *gin.Context, user *models.User) error {
	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, token, int(s.sessions.TTL().Seconds()), "/", "", s.secureCookies, true)
	return nil
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, "", -1, "/", "", s.secureCookies, true)
}
