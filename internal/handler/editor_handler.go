package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weekplan/weekplan-backend/internal/model"
	"github.com/weekplan/weekplan-backend/internal/response"
	"github.com/weekplan/weekplan-backend/internal/service"
	"github.com/weekplan/weekplan-backend/internal/validator"
)

// EditorHandler drives the course editor draft lifecycle.
type EditorHandler struct {
	editor *service.EditorService
}

func NewEditorHandler(editor *service.EditorService) *EditorHandler {
	return &EditorHandler{editor: editor}
}

// OpenDraftRequest optionally names an existing course to edit. Empty means
// open a draft for a new course.
type OpenDraftRequest struct {
	CourseUID string `json:"courseUid"`
}

// OpenDraft godoc
// POST /api/v1/editor/drafts
func (h *EditorHandler) OpenDraft(c *gin.Context) {
	var req OpenDraftRequest
	if c.Request.ContentLength > 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	if req.CourseUID == "" {
		draft := h.editor.OpenNew()
		response.Success(c, http.StatusCreated, gin.H{"draft": draft})
		return
	}

	draft, err := h.editor.OpenEdit(c.Request.Context(), req.CourseUID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"draft": draft})
}

// GetDraft godoc
// GET /api/v1/editor/drafts/:id
func (h *EditorHandler) GetDraft(c *gin.Context) {
	draft, err := h.editor.Draft(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// UpdateDraft godoc
// PUT /api/v1/editor/drafts/:id
// Replaces the draft's working copy without validating; drafts may hold
// transiently invalid state while the user edits.
func (h *EditorHandler) UpdateDraft(c *gin.Context) {
	var course model.CourseItem
	if fields := validator.Bind(c, &course); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.editor.Update(c.Param("id"), course)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// SaveDraft godoc
// POST /api/v1/editor/drafts/:id/save
// Validates and commits the draft. Rule failures keep the draft open and
// return the per-field, per-meeting error codes for inline display.
func (h *EditorHandler) SaveDraft(c *gin.Context) {
	course, validation, err := h.editor.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !validation.OK() {
		response.FailWithBody(c, http.StatusUnprocessableEntity, validationErrorBody(validation))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// CancelDraft godoc
// DELETE /api/v1/editor/drafts/:id
func (h *EditorHandler) CancelDraft(c *gin.Context) {
	if err := h.editor.Cancel(c.Param("id")); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "draft cancelled"})
}

// DeleteCourse godoc
// POST /api/v1/editor/drafts/:id/delete
// Deletes the draft's course from the store, bypassing validation.
func (h *EditorHandler) DeleteCourse(c *gin.Context) {
	if err := h.editor.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}
