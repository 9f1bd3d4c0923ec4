// ABOUTME: Handlers for the note pages: list, add, detail, edit and delete.
// ABOUTME: Every note handler runs behind requireLogin; slug routes also behind ownedNote.

package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/forms"
	"github.com/harper/notes/internal/models"
)

const searchLimit = 50

func (s *Server) handleHome(c *gin.Context) {
	s.render(c, http.StatusOK, "notes/home.html", nil)
}

func (s *Server) handleSuccess(c *gin.Context) {
	s.render(c, http.StatusOK, "notes/success.html", nil)
}

func (s *Server) handleNotesList(c *gin.Context) {
	user := currentUser(c)
	query := strings.TrimSpace(c.Query("q"))

	var notes []*models.Note
	if query == "" {
		var err error
		notes, err = db.ListNotesByAuthor(s.db, user.ID)
		if err != nil {
			s.serverError(c, err)
			return
		}
	} else {
		results, err := db.SearchNotes(s.db, user.ID, db.PhraseQuery(query), searchLimit)
		if err != nil {
			s.serverError(c, err)
			return
		}
		for _, r := range results {
			notes = append(notes, r.Note)
		}
	}

	s.render(c, http.StatusOK, "notes/list.html", gin.H{
		"object_list": notes,
		"query":       query,
	})
}

func (s *Server) handleNoteAddForm(c *gin.Context) {
	s.render(c, http.StatusOK, "notes/form.html", gin.H{
		"form": &forms.NoteForm{Errors: forms.Errors{}},
	})
}

func (s *Server) handleNoteAdd(c *gin.Context) {
	form := &forms.NoteForm{}
	// Bind failures leave fields empty; Save reports them as field errors.
	_ = c.ShouldBind(form)

	if _, err := form.Save(s.db, currentUser(c), nil); err != nil {
		s.formError(c, "notes/form.html", gin.H{"form": form}, err)
		return
	}
	c.Redirect(http.StatusFound, Reverse(RouteNotesDone))
}

func (s *Server) handleNoteDetail(c *gin.Context) {
	note := currentNote(c)
	s.render(c, http.StatusOK, "notes/detail.html", gin.H{
		"note": note,
		"body": s.markdown.Render(note.Text),
	})
}

func (s *Server) handleNoteEditForm(c *gin.Context) {
	note := currentNote(c)
	s.render(c, http.StatusOK, "notes/form.html", gin.H{
		"form": forms.NoteFormFromNote(note),
		"note": note,
	})
}

func (s *Server) handleNoteEdit(c *gin.Context) {
	note := currentNote(c)
	form := &forms.NoteForm{}
	_ = c.ShouldBind(form)

	if _, err := form.Save(s.db, currentUser(c), note); err != nil {
		s.formError(c, "notes/form.html", gin.H{"form": form, "note": note}, err)
		return
	}
	c.Redirect(http.StatusFound, Reverse(RouteNotesDone))
}

func (s *Server) handleNoteDeleteConfirm(c *gin.Context) {
	s.render(c, http.StatusOK, "notes/delete.html", gin.H{
		"note": currentNote(c),
	})
}

func (s *Server) handleNoteDelete(c *gin.Context) {
	note := currentNote(c)
	err := db.DeleteNote(s.db, note.ID)
	if errors.Is(err, db.ErrNoteNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, Reverse(RouteNotesDone))
}

// formError re-renders an invalid form with 200, or fails the request for
// anything other than a validation error.
func (s *Server) formError(c *gin.Context, page string, data gin.H, err error) {
	if errors.Is(err, forms.ErrInvalid) {
		s.render(c, http.StatusOK, page, data)
		return
	}
	s.serverError(c, err)
}
