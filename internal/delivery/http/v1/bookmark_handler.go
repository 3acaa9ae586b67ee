package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

type BookmarkHandler struct {
	bookmarkUC domain.BookmarkUsecase
}

func NewBookmarkHandler(candidates *gin.RouterGroup, bookmarkUC domain.BookmarkUsecase) {
	handler := &BookmarkHandler{bookmarkUC: bookmarkUC}

	candidates.POST("/jobs/:jobId/bookmark", handler.Add)
	candidates.DELETE("/jobs/:jobId/bookmark", handler.Remove)
	candidates.GET("/bookmarks", handler.List)
}

// Add godoc
// @Summary      Bookmark a job
// @Tags         bookmarks
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      201    {object}  response.Response{data=domain.Bookmark}
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/bookmark [post]
// @Security     BearerAuth
func (h *BookmarkHandler) Add(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	bookmark, err := h.bookmarkUC.Add(c.Request.Context(), candidate, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job bookmarked", bookmark)
}

// Remove godoc
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/bookmark [delete]
// @Security     BearerAuth
func (h *BookmarkHandler) Remove(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "job ID")
	if !ok {
		return
	}

	if err := h.bookmarkUC.Remove(c.Request.Context(), candidate, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bookmark removed", nil)
}

// List godoc
// @Summary      My bookmarks
// @Tags         bookmarks
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Bookmark}
// @Router       /candidates/bookmarks [get]
// @Security     BearerAuth
func (h *BookmarkHandler) List(c *gin.Context) {
	candidate, ok := currentCandidate(c)
	if !ok {
		return
	}

	items, err := h.bookmarkUC.ListMine(c.Request.Context(), candidate)
	if err != nil {
		c.Error(err)
		return
	}
	if items == nil {
		items = []domain.Bookmark{}
	}

	response.Success(c, http.StatusOK, "Bookmarks retrieved", items)
}
