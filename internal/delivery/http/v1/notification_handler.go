package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.PATCH("/read-all", handler.MarkAllRead)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.DELETE("/:id", handler.Delete)
		notifications.DELETE("", handler.DeleteAll)
	}

	protected.POST("/push-tokens", handler.RegisterPushToken)
	protected.DELETE("/push-tokens", handler.UnregisterPushToken)
}

type PushTokenRequest struct {
	Token    string `json:"token" binding:"required,max=4096,push_token"`
	Platform string `json:"platform" binding:"omitempty,oneof=web android ios"`
}

type countResult struct {
	Count int64 `json:"count"`
}

// List godoc
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        page      query     int  false  "Page"
// @Param        per_page  query     int  false  "Items per page"
// @Success      200       {object}  response.Response{data=domain.PaginatedResult[domain.Notification]}
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c, "per_page")

	result, err := h.notificationUC.List(c.Request.Context(), identity.UserID, page, perPage)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", result)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := h.notificationUC.MarkRead(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=countResult}
// @Router       /notifications/read-all [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	n, err := h.notificationUC.MarkAllRead(c.Request.Context(), identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications marked as read", countResult{Count: n})
}

// Delete godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id} [delete]
// @Security     BearerAuth
func (h *NotificationHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := h.notificationUC.Delete(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification deleted", nil)
}

// DeleteAll godoc
// @Summary      Delete all my notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=countResult}
// @Router       /notifications [delete]
// @Security     BearerAuth
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	n, err := h.notificationUC.DeleteAll(c.Request.Context(), identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications deleted", countResult{Count: n})
}

// RegisterPushToken godoc
// @Summary      Register a device for push notifications
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      PushTokenRequest  true  "Device token"
// @Success      201   {object}  response.Response
// @Router       /push-tokens [post]
// @Security     BearerAuth
func (h *NotificationHandler) RegisterPushToken(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req PushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.notificationUC.RegisterPushToken(c.Request.Context(), identity.UserID, req.Token, req.Platform); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Push token registered", nil)
}

// UnregisterPushToken godoc
// @Summary      Remove a push device
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      PushTokenRequest  true  "Device token"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /push-tokens [delete]
// @Security     BearerAuth
func (h *NotificationHandler) UnregisterPushToken(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req PushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.notificationUC.UnregisterPushToken(c.Request.Context(), identity.UserID, req.Token); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Push token removed", nil)
}
