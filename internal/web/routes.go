// ABOUTME: Named route table for the notes web app.
// ABOUTME: Reverse builds URLs from route names so handlers never hardcode paths.

package web

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	RouteHome       = "notes:home"
	RouteLogin      = "users:login"
	RouteLogout     = "users:logout"
	RouteSignup     = "users:signup"
	RouteNotesList  = "notes:list"
	RouteNotesAdd   = "notes:add"
	RouteNotesDone  = "notes:success"
	RouteNoteDetail = "notes:detail"
	RouteNoteEdit   = "notes:edit"
	RouteNoteDelete = "notes:delete"
)

var routes = map[string]string{
	RouteHome:       "/",
	RouteLogin:      "/auth/login/",
	RouteLogout:     "/auth/logout/",
	RouteSignup:     "/auth/signup/",
	RouteNotesList:  "/notes/",
	RouteNotesAdd:   "/add/",
	RouteNotesDone:  "/done/",
	RouteNoteDetail: "/note/:slug/",
	RouteNoteEdit:   "/edit/:slug/",
	RouteNoteDelete: "/delete/:slug/",
}

// Path returns the gin pattern registered for a route name.
func Path(name string) string {
	pattern, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown route %q", name))
	}
	return pattern
}

// Reverse returns the URL for a named route, substituting path parameters
// in order. It panics on an unknown name or a missing argument.
func Reverse(name string, args ...string) string {
	parts := strings.Split(Path(name), "/")
	next := 0
	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			continue
		}
		if next >= len(args) {
			panic(fmt.Sprintf("web: route %q needs argument %s", name, part))
		}
		parts[i] = url.PathEscape(args[next])
		next++
	}
	return strings.Join(parts, "/")
}

// loginRedirect builds <login>?next=<target>, keeping slashes readable.
func loginRedirect(target string) string {
	next := strings.ReplaceAll(url.QueryEscape(target), "%2F", "/")
	return Reverse(RouteLogin) + "?next=" + next
}

// safeNext accepts only same-site absolute paths as redirect targets.
// Browsers drop control characters from URLs, so any of them rejects next.
func safeNext(next string) bool {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return false
	}
	if strings.ContainsRune(next, '\\') || strings.IndexFunc(next, unicode.IsControl) >= 0 {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}
