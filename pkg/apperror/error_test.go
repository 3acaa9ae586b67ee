package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *apperror.AppError
		code int
		kind apperror.Kind
	}{
		{"bad request", apperror.BadRequest("x"), http.StatusBadRequest, apperror.KindValidation},
		{"conflict", apperror.Conflict("x"), http.StatusConflict, apperror.KindConflict},
		{"not found", apperror.NotFound("x"), http.StatusNotFound, apperror.KindNotFound},
		{"forbidden", apperror.Forbidden("x"), http.StatusForbidden, apperror.KindUnauthorized},
		{"unauthorized", apperror.Unauthorized("x"), http.StatusUnauthorized, apperror.KindUnauthenticated},
		{"upstream", apperror.Upstream("x", errors.New("smtp down")), http.StatusBadGateway, apperror.KindUpstream},
		{"internal", apperror.Internal(errors.New("boom")), http.StatusInternalServerError, apperror.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.kind, tt.err.Kind)
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", apperror.Conflict("dup"))
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
	})

	t.Run("nil is not any kind", func(t *testing.T) {
		assert.False(t, apperror.Is(nil, apperror.KindInternal))
	})

	t.Run("internal hides cause but unwraps", func(t *testing.T) {
		cause := errors.New("pg down")
		err := apperror.Internal(cause)
		assert.Equal(t, "Internal Server Error", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}
