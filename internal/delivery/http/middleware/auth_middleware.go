package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/auth"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/security"
)

const identityKey = "Identity"

// AuthConfig selects how bearer tokens are verified. HS256 tokens use
// Secret, RS256 tokens are checked against JWKS.
type AuthConfig struct {
	Secret string
	JWKS   *auth.Provider
}

// AuthMiddleware resolves the bearer token to an Identity. The role always
// comes from the user record, never from the token.
func AuthMiddleware(cfg AuthConfig, authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Try to get token from Header, then Cookie
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			if cookie, err := c.Cookie("auth_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			rejectUnauthenticated(c, secLog, "missing_token")
			return
		}

		// 2. Verify signature and standard claims
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodHMAC:
				if cfg.Secret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.Secret), nil
			case *jwt.SigningMethodRSA:
				if cfg.JWKS == nil {
					return nil, fmt.Errorf("RS256 token received but JWKS_URL is not configured")
				}
				return cfg.JWKS.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})
		if err != nil || !token.Valid {
			logger.Log.Debug("token validation failed", "error", err)
			rejectUnauthenticated(c, secLog, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			rejectUnauthenticated(c, secLog, "invalid_claims")
			return
		}
		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			rejectUnauthenticated(c, secLog, "missing_subject")
			return
		}

		// 3. Load the user for the authoritative role
		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			rejectUnauthenticated(c, secLog, "unknown_user")
			return
		}
		if email == "" {
			email = user.Email
		}

		identity := domain.Identity{UserID: user.ID, Email: email, Role: user.Role}
		c.Set(identityKey, identity)
		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyUserEmail), identity.Email)
		c.Set(string(domain.KeyUserRole), string(identity.Role))

		c.Next()
	}
}

// IdentityFrom returns the caller resolved by AuthMiddleware.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// RequireRole lets only callers with the given role through.
func RequireRole(role domain.Role, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			rejectUnauthenticated(c, secLog, "missing_identity")
			return
		}
		if identity.Role != role {
			secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventRoleDenied,
				UserID:    identity.UserID,
				Role:      string(identity.Role),
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString("RequestID"),
				Path:      c.FullPath(),
				Details:   map[string]interface{}{"required_role": string(role)},
			})
			response.AppError(c, apperror.Forbidden(fmt.Sprintf("Only %ss can perform this action", role)), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context, secLog *security.SecurityLogger, reason string) {
	secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventUnauthenticated,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString("RequestID"),
		Path:      c.FullPath(),
		Details:   map[string]interface{}{"reason": reason},
	})
	response.AppError(c, apperror.Unauthorized("Authentication required"), nil)
	c.Abort()
}
