package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arivald8/notehub/internal/metrics"
	"github.com/arivald8/notehub/internal/middleware"
	"github.com/arivald8/notehub/internal/model"
)

// NoteService is the slice of the note use cases the handlers need. Every
// method takes the acting identity; ownership is enforced inside.
type NoteService interface {
	Create(ctx context.Context, actor, title, content string) (*model.Note, error)
	Get(ctx context.Context, actor string, id uint64) (*model.Note, error)
	Update(ctx context.Context, actor string, id uint64, title, content string) (*model.Note, error)
	Delete(ctx context.Context, actor string, id uint64) error
	List(ctx context.Context, actor, owner string) ([]model.Note, error)
}

// NoteHandler serves the note CRUD endpoints.
type NoteHandler struct {
	Notes NoteService
}

func NewNoteHandler(notes NoteService) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

type noteReq struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}

type notePart struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

func toNotePart(n *model.Note) notePart {
	return notePart{ID: n.ID, Title: n.Title, Content: n.Content, Owner: n.OwnerUsername}
}

// Create stores a new note owned by the current user.
func (h *NoteHandler) Create(c echo.Context) error {
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Notes.Create(ctx, middleware.CurrentUser(c), req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	metrics.NoteOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, echo.Map{"note": toNotePart(n)})
}

// Get returns one note, owner only.
func (h *NoteHandler) Get(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Notes.Get(ctx, middleware.CurrentUser(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"note": toNotePart(n)})
}

// Update overwrites title and content of an owned note.
func (h *NoteHandler) Update(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Notes.Update(ctx, middleware.CurrentUser(c), id, req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	metrics.NoteOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, echo.Map{"note": toNotePart(n)})
}

// Delete removes an owned note.
func (h *NoteHandler) Delete(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Notes.Delete(ctx, middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	metrics.NoteOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// List returns the current user's notes in creation order.
func (h *NoteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	actor := middleware.CurrentUser(c)
	notes, err := h.Notes.List(ctx, actor, actor)
	if err != nil {
		return writeError(c, err)
	}
	parts := make([]notePart, 0, len(notes))
	for i := range notes {
		parts = append(parts, toNotePart(&notes[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"notes": parts})
}

func noteID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
