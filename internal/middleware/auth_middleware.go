package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate
const (
	ContextUserKey      = "currentUser"
	ContextClaimsKey    = "authClaims"
	ContextAuthErrorKey = "authError"
)

// PolicyRule maps a path prefix to an access requirement. An empty role list
// on a non-public rule means any authenticated user.
type PolicyRule struct {
	Prefix string
	Public bool
	Roles  []models.RoleType
}

// DefaultPolicy is the route access policy. Rules are evaluated in order and
// the first prefix match wins; a request matching no rule is denied.
var DefaultPolicy = []PolicyRule{
	{Prefix: "/health", Public: true},
	{Prefix: "/api/auth", Public: true},
	{Prefix: "/api/admin", Roles: []models.RoleType{models.RoleAdmin}},
	{Prefix: "/api/instructor", Roles: []models.RoleType{models.RoleInstructor, models.RoleAdmin}},
	{Prefix: "/api/student", Roles: []models.RoleType{models.RoleStudent, models.RoleAdmin}},
	{Prefix: "/api/", Roles: nil},
}

// Authenticate resolves the caller's identity from the Authorization header.
// It never aborts: a missing or bad token only records why, and Authorize
// decides whether that matters for the route.
func Authenticate(jwtService *auth.JWTService, userRepo repositories.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			c.Set(ContextAuthErrorKey, err)
			c.Next()
			return
		}

		claims, err := jwtService.Verify(token)
		if err != nil {
			c.Set(ContextAuthErrorKey, err)
			c.Next()
			return
		}

		user, err := userRepo.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			c.Set(ContextAuthErrorKey, auth.ErrInvalidToken)
			c.Next()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// Authorize enforces the route access policy. Unauthenticated requests to a
// gated route get 401; authenticated requests without a required role get 403.
func Authorize(policy []PolicyRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, matched := matchRule(policy, c.Request.URL.Path)
		if matched && rule.Public {
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if !matched {
			abortForbidden(c)
			return
		}

		if len(rule.Roles) == 0 || hasAnyRole(user, rule.Roles) {
			c.Next()
			return
		}
		abortForbidden(c)
	}
}

func matchRule(policy []PolicyRule, path string) (PolicyRule, bool) {
	for _, rule := range policy {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return PolicyRule{}, false
}

func hasAnyRole(user *models.User, roles []models.RoleType) bool {
	for _, role := range roles {
		if user.RoleType == role {
			return true
		}
	}
	return false
}

// CurrentUser returns the authenticated user set by Authenticate
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// MustCurrentUser returns the authenticated user or aborts with 401. Routes
// behind Authorize always have one; this guards direct handler tests.
func MustCurrentUser(c *gin.Context) (*models.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return nil, false
	}
	return user, true
}

func abortUnauthorized(c *gin.Context) {
	code := dto.ErrorCodeUnauthorized
	message := "Authentication required"

	if value, exists := c.Get(ContextAuthErrorKey); exists {
		if err, ok := value.(error); ok {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				code = dto.ErrorCodeExpiredToken
				message = "Token expired"
			case errors.Is(err, auth.ErrInvalidFormat):
				code = dto.ErrorCodeInvalidToken
				message = "Invalid authorization header format"
			default:
				code = dto.ErrorCodeInvalidToken
				message = "Invalid token"
			}
		}
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.ErrPermissionDenied.Error())))
}
