package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
)

type ColumnHandler struct {
	columnUC domain.ColumnUsecase
}

// NewColumnHandler registers board column routes on the employer group
func NewColumnHandler(employers *gin.RouterGroup, columnUC domain.ColumnUsecase) {
	handler := &ColumnHandler{columnUC: columnUC}

	employers.POST("/columns", handler.CreateColumn)
	employers.GET("/columns", handler.ListColumns)
	employers.PUT("/columns/:id", handler.RenameColumn)
	employers.DELETE("/columns/:id", handler.DeleteColumn)
}

type CreateColumnRequest struct {
	JobID int64  `json:"job_id" binding:"required,gt=0"`
	Name  string `json:"name" binding:"required,not_blank,max=100"`
}

type RenameColumnRequest struct {
	JobID int64  `json:"job_id" binding:"required,gt=0"`
	Name  string `json:"name" binding:"required,not_blank,max=100"`
}

// CreateColumn godoc
// @Summary      Create a board column
// @Description  Add a named column to the board of one of the employer's jobs
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        body  body      CreateColumnRequest  true  "Column"
// @Success      201   {object}  response.Response{data=domain.Column}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/columns [post]
// @Security     BearerAuth
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}

	var req CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columnUC.CreateColumn(c.Request.Context(), employer, req.JobID, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Column created", column)
}

// ListColumns godoc
// @Summary      List board columns
// @Tags         columns
// @Produce      json
// @Param        job_id  query     int  false  "Only columns of this job"
// @Success      200     {object}  response.Response{data=[]domain.Column}
// @Router       /employers/columns [get]
// @Security     BearerAuth
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}

	var jobID *int64
	if raw := c.Query("job_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid job ID"))
			return
		}
		jobID = &id
	}

	columns, err := h.columnUC.ListColumns(c.Request.Context(), employer, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	if columns == nil {
		columns = []domain.Column{}
	}

	response.Success(c, http.StatusOK, "Columns retrieved", columns)
}

// RenameColumn godoc
// @Summary      Rename a board column
// @Description  Renames the column and moves its applications along
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Column ID"
// @Param        body  body      RenameColumnRequest  true  "New name"
// @Success      200   {object}  response.Response{data=domain.Column}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/columns/{id} [put]
// @Security     BearerAuth
func (h *ColumnHandler) RenameColumn(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id", "column ID")
	if !ok {
		return
	}

	var req RenameColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columnUC.RenameColumn(c.Request.Context(), employer, columnID, req.JobID, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Column renamed", column)
}

// DeleteColumn godoc
// @Summary      Delete a board column
// @Description  Applications in the column go back to All Applications
// @Tags         columns
// @Produce      json
// @Param        id   path      int  true  "Column ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/columns/{id} [delete]
// @Security     BearerAuth
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	employer, ok := currentEmployer(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id", "column ID")
	if !ok {
		return
	}

	if err := h.columnUC.DeleteColumn(c.Request.Context(), employer, columnID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Column deleted", nil)
}
