package middleware

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

var errUserGone = errors.New("token user no longer exists")

type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireRole loads the current user from the store and rejects the request
// unless its role is one of roles. With no roles any signed-in user passes.
// The role claim inside the token is never consulted.
func RequireRole(users UserFinder, roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := UserID(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized(errUserGone))
				return
			}

			err = fmt.Errorf("middleware.RequireRole -> users.GetUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, user.Role) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %d has role %q", user.ID, user.Role)))
			return
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// RequireAdmin is RequireRole for admin and top_admin.
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return RequireRole(users, domain.RoleAdmin, domain.RoleTopAdmin)
}

// User returns the user loaded by RequireRole.
func User(ctx *gin.Context) (domain.User, bool) {
	v, ok := ctx.Get(userKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
