// ABOUTME: Tests for endpoint availability and redirects.
// ABOUTME: Covers anonymous, author and reader access to every named route.

package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	assert.Equal(t, "/", Reverse(RouteHome))
	assert.Equal(t, "/notes/", Reverse(RouteNotesList))
	assert.Equal(t, "/edit/slug/", Reverse(RouteNoteEdit, "slug"))
	assert.Equal(t, "/note/a%20b/", Reverse(RouteNoteDetail, "a b"))
	assert.Panics(t, func() { Reverse("notes:nope") })
	assert.Panics(t, func() { Reverse(RouteNoteDetail) })
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/edit/slug/", loginRedirect("/edit/slug/"))
	assert.Equal(t, "/auth/login/?next=/notes/%3Fq%3Dgo", loginRedirect("/notes/?q=go"))
}

func TestSafeNext(t *testing.T) {
	assert.True(t, safeNext("/notes/"))
	assert.False(t, safeNext(""))
	assert.False(t, safeNext("//evil.example.com/"))
	assert.False(t, safeNext("https://evil.example.com/"))
	assert.False(t, safeNext("/\\evil.example.com"))
	assert.False(t, safeNext("/\t/evil.example.com/"))
	assert.False(t, safeNext("/\x7f/evil.example.com/"))
	assert.True(t, safeNext("/notes/?q=go"))
}

func TestPagesAvailability(t *testing.T) {
	app := newTestApp(t)
	urls := []string{
		Reverse(RouteHome),
		Reverse(RouteLogin),
		Reverse(RouteLogout),
		Reverse(RouteSignup),
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			rec := app.anonymous().get(u)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestAvailabilityForNoteDetailEditAndDelete(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("Автор заметки")
	reader := app.createUser("Другой пользователь")
	note := app.createNote("Заголовок", "Текст заметки", "slug", author)

	urls := []string{
		Reverse(RouteNoteEdit, note.Slug),
		Reverse(RouteNoteDetail, note.Slug),
		Reverse(RouteNoteDelete, note.Slug),
	}
	cases := []struct {
		name   string
		client *client
		status int
	}{
		{"author", app.loginAs(author), http.StatusOK},
		{"reader", app.loginAs(reader), http.StatusNotFound},
	}

	for _, tc := range cases {
		for _, u := range urls {
			t.Run(tc.name+" "+u, func(t *testing.T) {
				rec := tc.client.get(u)
				assert.Equal(t, tc.status, rec.Code)
			})
		}
	}
}

func TestUnknownSlugIsNotFound(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("author")

	rec := app.loginAs(author).get(Reverse(RouteNoteDetail, "missing"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedirectForAnonymousClient(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("Автор заметки")
	note := app.createNote("Заголовок", "Текст заметки", "slug", author)

	urls := []string{
		Reverse(RouteNotesList),
		Reverse(RouteNotesDone),
		Reverse(RouteNotesAdd),
		Reverse(RouteNoteEdit, note.Slug),
		Reverse(RouteNoteDetail, note.Slug),
		Reverse(RouteNoteDelete, note.Slug),
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			rec := app.anonymous().get(u)
			requireRedirect(t, rec, Reverse(RouteLogin)+"?next="+u)

			login := app.anonymous().get(rec.Header().Get("Location"))
			assert.Equal(t, http.StatusOK, login.Code)
		})
	}
}

func TestPagesForAuthenticatedUser(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("Автор заметки")
	cl := app.loginAs(author)

	urls := []string{
		Reverse(RouteNotesList),
		Reverse(RouteNotesDone),
		Reverse(RouteNotesAdd),
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, cl.get(u).Code)
		})
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.anonymous().get("/no/such/page/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "errors/404.html", app.renderer.name)
}

func TestStaleSessionIsAnonymous(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("author")
	cl := app.loginAs(author)

	if err := app.sessions.Destroy(cl.cookie.Value); err != nil {
		t.Fatalf("failed to destroy session: %v", err)
	}

	rec := cl.get(Reverse(RouteNotesList))
	requireRedirect(t, rec, Reverse(RouteLogin)+"?next=/notes/")
}
