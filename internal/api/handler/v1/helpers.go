package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/middleware"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

var errNoUser = errors.New("no authenticated user on the request")

type validatable interface {
	Validate() error
}

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	response.Render(ctx, http.StatusOK, "OK", nil)
}

// bindJSON decodes and validates the body into req, rendering a 400 on failure.
func bindJSON(ctx *gin.Context, req validatable) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	raw := ctx.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s must be a positive integer, got %q", param, raw)))
		return 0, false
	}

	return uint(id), true
}

func queryInt(ctx *gin.Context, key string) (int, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)))
		return 0, false
	}

	return n, true
}

// getUserFromContext returns the user loaded by middleware.RequireRole.
func getUserFromContext(ctx *gin.Context) (domain.User, *response.Err) {
	user, ok := middleware.User(ctx)
	if !ok {
		return domain.User{}, response.ErrInternalServerError(errNoUser)
	}

	return user, nil
}

func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return 0, response.ErrUnauthorized(errNoUser)
	}

	return id, nil
}
