package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}
	protected.GET("/me", handler.Me)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}
