// ABOUTME: Test harness for the web package: app setup, clients and context capture.
// ABOUTME: Clients carry a session cookie the way a logged-in browser would.

package web

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"github.com/harper/notes/internal/auth"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "correct-horse"

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingRenderer keeps the context of the last rendered page.
type recordingRenderer struct {
	inner   render.HTMLRender
	name    string
	context gin.H
}

func (r *recordingRenderer) Instance(name string, data any) render.Render {
	r.name = name
	r.context, _ = data.(gin.H)
	return r.inner.Instance(name, data)
}

type testApp struct {
	t        *testing.T
	db       *sql.DB
	sessions *session.Store
	server   *Server
	renderer *recordingRenderer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	sessions, err := session.Open(session.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	templates, err := NewTemplateRenderer()
	require.NoError(t, err)
	renderer := &recordingRenderer{inner: templates}

	srv, err := New(Options{
		DB:       conn,
		Sessions: sessions,
		Logger:   zap.NewNop(),
		Renderer: renderer,
	})
	require.NoError(t, err)

	return &testApp{t: t, db: conn, sessions: sessions, server: srv, renderer: renderer}
}

func (a *testApp) createUser(username string) *models.User {
	a.t.Helper()
	user, err := auth.Register(a.db, username, testPassword)
	require.NoError(a.t, err)
	return user
}

func (a *testApp) createNote(title, text, slug string, author *models.User) *models.Note {
	a.t.Helper()
	note := models.NewNote(title, text, slug, author.ID)
	require.NoError(a.t, db.CreateNote(a.db, note))
	return note
}

func (a *testApp) countNotes() int {
	a.t.Helper()
	n, err := db.CountNotes(a.db)
	require.NoError(a.t, err)
	return n
}

func (a *testApp) reloadNote(id uuid.UUID) *models.Note {
	a.t.Helper()
	note, err := db.GetNoteByID(a.db, id)
	require.NoError(a.t, err)
	return note
}

// anonymous returns a client without a session.
func (a *testApp) anonymous() *client {
	return &client{app: a}
}

// loginAs returns a client holding a fresh session for user.
func (a *testApp) loginAs(user *models.User) *client {
	a.t.Helper()
	token, err := a.sessions.Create(user.ID)
	require.NoError(a.t, err)
	return &client{app: a, cookie: &http.Cookie{Name: defaultCookieName, Value: token}}
}

type client struct {
	app    *testApp
	cookie *http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	if form != nil {
		return c.send(method, target, "application/x-www-form-urlencoded", form.Encode())
	}
	return c.send(method, target, "", "")
}

func (c *client) send(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	c.app.renderer.name = ""
	c.app.renderer.context = nil
	rec := httptest.NewRecorder()
	c.app.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, form)
}

func (c *client) delete(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodDelete, target, nil)
}

// context returns the template context of the last rendered page.
func (a *testApp) context() gin.H {
	return a.renderer.context
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code, "body: %s", rec.Body.String())
	require.Equal(t, want, rec.Header().Get("Location"))
}

func containsNote(list any, id uuid.UUID) bool {
	notes, _ := list.([]*models.Note)
	for _, n := range notes {
		if n.ID == id {
			return true
		}
	}
	return false
}
