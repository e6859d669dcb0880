package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/request"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.PublicProfile, error)
	UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error)
	ChangeRole(ctx context.Context, actorID, targetID uint, role domain.Role) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	response.Render(ctx, http.StatusOK, "User retrieved successfully", user)
}

// HandleUpdateMe godoc
// @Summary      Update own profile
// @Description  Updates name, phone, bio and avatar. A replaced uploaded avatar is deleted.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.User}
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateMe(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", userID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMe -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Profile updated successfully", user)
}

// HandleLeaderboard godoc
// @Summary      Leaderboard
// @Description  Public profiles ordered by score, highest first.
// @Tags         users
// @Produce      json
// @Param        limit  query     int  false  "number of entries (default 10, max 100)"
// @Success      200    {object}  response.Envelope{data=response.Leaderboard}
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /users/leaderboard [get]
func (h *UserHandler) HandleLeaderboard(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit")
	if !ok {
		return
	}

	profiles, err := h.svc.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	board := response.Leaderboard{Entries: make([]response.LeaderboardEntry, 0, len(profiles))}
	for i, p := range profiles {
		board.Entries = append(board.Entries, response.LeaderboardEntry{
			Rank:     i + 1,
			ID:       p.ID,
			Username: p.Username,
			Name:     p.Name,
			Score:    p.Score,
			Avatar:   p.AvatarURL,
		})
	}

	response.Render(ctx, http.StatusOK, "Leaderboard retrieved successfully", board)
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.User}
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Users retrieved successfully", users)
}

// HandleGetUser godoc
// @Summary      Get a user
// @Description  Members may read their own record, admins any record.
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "user ID"
// @Success      200     {object}  response.Envelope{data=domain.User}
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, ok := parseID(ctx, "userID")
	if !ok {
		return
	}

	if actor.ID != userID && !actor.Role.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %d may not read user %d", actor.ID, userID)))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "User retrieved successfully", user)
}

// HandleChangeRole godoc
// @Summary      Change a user's role
// @Description  Admins may set user roles; only a top admin may grant or revoke admin and top_admin. Nobody may change their own role. Takes effect on the target's next request.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int                        true  "user ID"
// @Param        request  body      request.ChangeRoleRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.User}
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/role [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleChangeRole(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, ok := parseID(ctx, "userID")
	if !ok {
		return
	}

	var req request.ChangeRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := h.svc.ChangeRole(ctx.Request.Context(), actor.ID, userID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", userID))
		case errors.Is(err, service.ErrInvalidRole):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))
		case errors.Is(err, service.ErrSelfRoleChange):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrSelfRoleChange))
		case errors.Is(err, service.ErrForbiddenRoleChange):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrForbiddenRoleChange))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleChangeRole -> h.svc.ChangeRole -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.Render(ctx, http.StatusOK, "Role updated successfully", user)
}
