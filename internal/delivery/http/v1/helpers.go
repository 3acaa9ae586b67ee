package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/middleware"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
)

// Role groups are already guarded by RequireRole; these only unwrap the
// typed ticket for the usecase.

func currentIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Authentication required"))
	}
	return identity, ok
}

func currentEmployer(c *gin.Context) (domain.Employer, bool) {
	identity, ok := currentIdentity(c)
	if !ok {
		return domain.Employer{}, false
	}
	employer, ok := identity.AsEmployer()
	if !ok {
		c.Error(apperror.Forbidden("Only employers can perform this action"))
	}
	return employer, ok
}

func currentCandidate(c *gin.Context) (domain.Candidate, bool) {
	identity, ok := currentIdentity(c)
	if !ok {
		return domain.Candidate{}, false
	}
	candidate, ok := identity.AsCandidate()
	if !ok {
		c.Error(apperror.Forbidden("Only candidates can perform this action"))
	}
	return candidate, ok
}

func pathID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + label))
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context, sizeKey string) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery(sizeKey, "10"))
	return domain.NormalizePage(page, size)
}

// bindJSON binds and validates the body. Field errors are left for
// ErrorHandler to format; anything else is a malformed body.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.Error(err)
		} else {
			c.Error(apperror.BadRequest("Request body is malformed"))
		}
		return false
	}
	return true
}
