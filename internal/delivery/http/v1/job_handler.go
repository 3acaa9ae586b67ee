package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, employers *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs/:jobId", handler.GetDetails)

	employers.POST("/jobs", handler.Create)
	employers.GET("/jobs", handler.ListByEmployer)
	employers.PUT("/jobs/:jobId", handler.Update)
	employers.DELETE("/jobs/:jobId", handler.Delete)
}

// Create godoc
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      domain.JobInput  true  "Job"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Router       /employers/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}

	var input domain.JobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), employer, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details retrieved", job)
}

// ListByEmployer godoc
// @Summary      List my jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Router       /employers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c, "page_size")

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), employer, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// Update godoc
// @Summary      Edit a job
// @Description  Expired jobs cannot be edited. Applicants are notified.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId  path      int              true  "Job ID"
// @Param        body   body      domain.JobInput  true  "Job"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /employers/jobs/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	var input domain.JobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), employer, jobID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /employers/jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), employer, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
