package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
)

const currentUserKey = "currentUser"

// JWTAuth validates the bearer token and loads the authenticated user onto
// the context. A valid token whose user has since been deleted is rejected
// with 401: claims alone are never trusted as a principal.
func JWTAuth(jwtService *auth.JWTService, userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserNotFound) {
				HandleAPIError(c, apperrors.ErrPrincipalNotFound)
				return
			}
			HandleAPIError(c, err)
			return
		}

		if !user.IsActive {
			HandleAPIError(c, apperrors.ErrAccountDisabled)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser returns the authenticated user set by JWTAuth.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RoleRequired allows only the given roles past. The 403 body names the
// roles the route requires and the role the caller actually has.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrPrincipalNotFound)
			return
		}

		for _, role := range roles {
			if user.RoleType == role {
				c.Next()
				return
			}
		}

		names := make([]string, 0, len(roles))
		for _, role := range roles {
			names = append(names, string(role))
		}

		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden,
			"Requires role "+strings.Join(names, " or ")+", have "+string(user.RoleType))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	}
}
