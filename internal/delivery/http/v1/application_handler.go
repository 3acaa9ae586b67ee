package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/security"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	secLog        *security.SecurityLogger
}

// NewApplicationHandler registers application and board routes
func NewApplicationHandler(candidates, employers *gin.RouterGroup, applicationUC domain.ApplicationUsecase, secLog *security.SecurityLogger) {
	handler := &ApplicationHandler{applicationUC: applicationUC, secLog: secLog}

	candidates.POST("/jobs/:jobId/apply", handler.ApplyToJob)
	candidates.GET("/applications", handler.GetMyApplications)

	employers.GET("/jobs/:jobId/applications", handler.ListJobApplications)
	employers.GET("/jobs/:jobId/board", handler.GetBoard)
	employers.GET("/jobs/:jobId/board/export", handler.ExportBoard)
	employers.PATCH("/applications/:id/move", handler.MoveApplication)
}

// ApplyToJobRequest is the request payload for applying to a job
type ApplyToJobRequest struct {
	ResumeURL   string `json:"resume_url" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// MoveApplicationRequest names the target column
type MoveApplicationRequest struct {
	TrelloName string `json:"trello_name" binding:"required,not_blank"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit an application for an open job (Candidate only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                true  "Job ID"
// @Param        body   body      ApplyToJobRequest  true  "Application data"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	var req ApplyToJobRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.Submit(c.Request.Context(), candidate, jobID, req.ResumeURL, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}

	applications, err := h.applicationUC.ListMine(c.Request.Context(), candidate)
	if err != nil {
		c.Error(err)
		return
	}
	if applications == nil {
		applications = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListJobApplications godoc
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	applications, err := h.applicationUC.ListByJob(c.Request.Context(), employer, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	if applications == nil {
		applications = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// MoveApplication godoc
// @Summary      Move an application to another column
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Application ID"
// @Param        body  body      MoveApplicationRequest  true  "Target column"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/applications/{id}/move [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) MoveApplication(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id", "application ID")
	if !ok {
		return
	}

	var req MoveApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.Move(c.Request.Context(), employer, appID, req.TrelloName)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application moved", app)
}

// GetBoard godoc
// @Summary      Get the job board
// @Description  Protected buckets first, then the employer's columns in creation order
// @Tags         board
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.Board}
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/board [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetBoard(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	board, err := h.applicationUC.GetBoard(c.Request.Context(), employer, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Board retrieved", board)
}

// ExportBoard godoc
// @Summary      Export the job board
// @Tags         board
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        jobId  path  int  true  "Job ID"
// @Success      200    {file}  file
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/board/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportBoard(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	data, filename, err := h.applicationUC.ExportBoard(c.Request.Context(), employer, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventDataExport,
		UserID:    employer.ID,
		Role:      string(domain.RoleEmployer),
		IP:        c.ClientIP(),
		RequestID: c.GetString("RequestID"),
		Path:      c.FullPath(),
		Details:   map[string]interface{}{"job_id": jobID, "bytes": len(data)},
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
