package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/weekplan/weekplan-backend/internal/model"
	"github.com/weekplan/weekplan-backend/internal/response"
	"github.com/weekplan/weekplan-backend/internal/service"
	"github.com/weekplan/weekplan-backend/internal/validator"
)

// ScheduleHandler exposes the schedule store: title and course CRUD.
type ScheduleHandler struct {
	sched *service.ScheduleService
}

func NewScheduleHandler(sched *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{sched: sched}
}

// GetSchedule godoc
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	data := h.sched.Data(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"scheduleData": data})
}

// UpdateTitleRequest is the payload for renaming the schedule.
type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// UpdateTitle godoc
// PUT /api/v1/schedule/title
func (h *ScheduleHandler) UpdateTitle(c *gin.Context) {
	var req UpdateTitleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.sched.SetTitle(c.Request.Context(), req.Title); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"title": req.Title})
}

// CreateCourse godoc
// POST /api/v1/schedule/courses
// Adds a course directly, applying the same save-time rules as the editor.
func (h *ScheduleHandler) CreateCourse(c *gin.Context) {
	var course model.CourseItem
	if fields := validator.Bind(c, &course); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if course.UID == "" {
		course.UID = uuid.New().String()
	}
	for i := range course.MeetingTimes {
		if course.MeetingTimes[i].UID == "" {
			course.MeetingTimes[i].UID = uuid.New().String()
		}
	}

	if v := model.ValidateCourse(course); !v.OK() {
		response.FailWithBody(c, http.StatusUnprocessableEntity, validationErrorBody(v))
		return
	}

	if err := h.sched.AddCourse(c.Request.Context(), course); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse godoc
// PUT /api/v1/schedule/courses/:uid
func (h *ScheduleHandler) UpdateCourse(c *gin.Context) {
	var course model.CourseItem
	if fields := validator.Bind(c, &course); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	course.UID = c.Param("uid")

	if v := model.ValidateCourse(course); !v.OK() {
		response.FailWithBody(c, http.StatusUnprocessableEntity, validationErrorBody(v))
		return
	}

	if err := h.sched.UpdateCourse(c.Request.Context(), course); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/schedule/courses/:uid
func (h *ScheduleHandler) DeleteCourse(c *gin.Context) {
	if err := h.sched.DeleteCourse(c.Request.Context(), c.Param("uid")); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}

// validationErrorBody maps save-time rule failures onto the error envelope:
// a title field message plus per-meeting error codes keyed by meeting index.
func validationErrorBody(v model.CourseValidation) *response.ErrorBody {
	body := &response.ErrorBody{Code: response.ErrValidation}

	if v.EmptyTitle {
		body.Fields = map[string]string{
			"title": response.GetMessage(response.ErrEmptyTitle),
		}
	}

	for i, m := range v.MeetingTimes {
		var codes []response.ErrCode
		if m.NoDaySelected {
			codes = append(codes, response.ErrNoDaySelected)
		}
		if m.TimeOrderInvalid {
			codes = append(codes, response.ErrTimeOrderInvalid)
		}
		if len(codes) > 0 {
			if body.Meetings == nil {
				body.Meetings = make(map[string][]response.ErrCode)
			}
			body.Meetings[strconv.Itoa(i)] = codes
		}
	}

	return body
}
