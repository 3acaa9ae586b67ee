package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

type MeetingHandler struct {
	meetingUC domain.MeetingUsecase
}

func NewMeetingHandler(protected, employers, candidates *gin.RouterGroup, meetingUC domain.MeetingUsecase) {
	handler := &MeetingHandler{meetingUC: meetingUC}

	protected.GET("/meetings/:id", handler.GetMeeting)

	employers.POST("/jobs/:jobId/meetings", handler.Schedule)
	employers.GET("/meetings", handler.ListForEmployer)
	employers.PUT("/meetings/:id", handler.Reschedule)
	employers.DELETE("/meetings/:id", handler.Cancel)

	candidates.GET("/meetings", handler.ListForCandidate)
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Fails with 409 when either participant already has an overlapping Scheduled meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                     true  "Job ID"
// @Param        body   body      domain.ScheduleRequest  true  "Slot"
// @Success      201    {object}  response.Response{data=domain.Meeting}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /employers/jobs/{jobId}/meetings [post]
// @Security     BearerAuth
func (h *MeetingHandler) Schedule(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	var req domain.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	meeting, err := h.meetingUC.Schedule(c.Request.Context(), employer, jobID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Meeting scheduled", meeting)
}

// Reschedule godoc
// @Summary      Reschedule an interview
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Meeting ID"
// @Param        body  body      domain.TimeSlot  true  "New slot"
// @Success      200   {object}  response.Response{data=domain.Meeting}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/meetings/{id} [put]
// @Security     BearerAuth
func (h *MeetingHandler) Reschedule(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	meetingID, ok := pathID(c, "id", "meeting ID")
	if !ok {
		return
	}

	var slot domain.TimeSlot
	if !bindJSON(c, &slot) {
		return
	}

	meeting, err := h.meetingUC.Reschedule(c.Request.Context(), employer, meetingID, slot)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meeting rescheduled", meeting)
}

// Cancel godoc
// @Summary      Cancel an interview
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  response.Response{data=domain.Meeting}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /employers/meetings/{id} [delete]
// @Security     BearerAuth
func (h *MeetingHandler) Cancel(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	meetingID, ok := pathID(c, "id", "meeting ID")
	if !ok {
		return
	}

	meeting, err := h.meetingUC.Cancel(c.Request.Context(), employer, meetingID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meeting cancelled", meeting)
}

// GetMeeting godoc
// @Summary      Get a meeting
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  response.Response{data=domain.Meeting}
// @Failure      404  {object}  response.Response
// @Router       /meetings/{id} [get]
// @Security     BearerAuth
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	meetingID, ok := pathID(c, "id", "meeting ID")
	if !ok {
		return
	}

	meeting, err := h.meetingUC.GetMeeting(c.Request.Context(), identity, meetingID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meeting retrieved", meeting)
}

// ListForEmployer godoc
// @Summary      Meetings I scheduled
// @Tags         meetings
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Meeting]}
// @Router       /employers/meetings [get]
// @Security     BearerAuth
func (h *MeetingHandler) ListForEmployer(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c, "page_size")

	result, err := h.meetingUC.ListForEmployer(c.Request.Context(), employer, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meetings retrieved", result)
}

// ListForCandidate godoc
// @Summary      My upcoming meetings
// @Tags         meetings
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Meeting]}
// @Router       /candidates/meetings [get]
// @Security     BearerAuth
func (h *MeetingHandler) ListForCandidate(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c, "page_size")

	result, err := h.meetingUC.ListForCandidate(c.Request.Context(), candidate, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meetings retrieved", result)
}
