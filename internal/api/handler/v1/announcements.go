package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/request"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

type AnnouncementService interface {
	Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
	Get(ctx context.Context, id uint) (domain.Announcement, error)
	List(ctx context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error)
	Latest(ctx context.Context, limit int) ([]domain.Announcement, error)
	Update(ctx context.Context, id uint, patch domain.AnnouncementPatch) (domain.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementHandler struct {
	svc AnnouncementService
}

func NewAnnouncementHandler(svc AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc: svc,
	}
}

// HandleListAnnouncements godoc
// @Summary      List announcements
// @Description  Newest event date first.
// @Tags         announcements
// @Produce      json
// @Param        category  query     string  false  "category filter"
// @Param        active    query     bool    false  "only active (true) or closed (false) announcements"
// @Success      200       {object}  response.Envelope{data=[]domain.Announcement}
// @Failure      400       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /announcements [get]
func (h *AnnouncementHandler) HandleListAnnouncements(ctx *gin.Context) {
	filter := domain.AnnouncementFilter{Category: ctx.Query("category")}
	if raw := ctx.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("active must be true or false, got %q", raw)))
			return
		}
		filter.Active = &active
	}

	announcements, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnnouncements -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Announcements retrieved successfully", announcements)
}

// HandleLatestAnnouncements godoc
// @Summary      Latest announcements
// @Description  Most recently published first.
// @Tags         announcements
// @Produce      json
// @Param        limit  query     int  false  "number of announcements (default 3, max 50)"
// @Success      200    {object}  response.Envelope{data=[]domain.Announcement}
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /announcements/latest [get]
func (h *AnnouncementHandler) HandleLatestAnnouncements(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit")
	if !ok {
		return
	}

	announcements, err := h.svc.Latest(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleLatestAnnouncements -> h.svc.Latest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Announcements retrieved successfully", announcements)
}

// HandleGetAnnouncement godoc
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope{data=domain.Announcement}
// @Failure      400             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /announcements/{announcementID} [get]
func (h *AnnouncementHandler) HandleGetAnnouncement(ctx *gin.Context) {
	id, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	announcement, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetAnnouncement -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Announcement retrieved successfully", announcement)
}

// HandleCreateAnnouncement godoc
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateAnnouncementRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.Announcement}
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /announcements [post]
// @Security     BearerAuth
func (h *AnnouncementHandler) HandleCreateAnnouncement(ctx *gin.Context) {
	var req request.CreateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}

	announcement, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAnnouncement -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusCreated, "Announcement created successfully", announcement)
}

// HandleUpdateAnnouncement godoc
// @Summary      Update an announcement
// @Description  Partial update. Uploaded images no longer referenced are deleted.
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        announcementID  path      int                                true  "announcement ID"
// @Param        request         body      request.UpdateAnnouncementRequest  true  "request body"
// @Success      200             {object}  response.Envelope{data=domain.Announcement}
// @Failure      400             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /announcements/{announcementID} [patch]
// @Security     BearerAuth
func (h *AnnouncementHandler) HandleUpdateAnnouncement(ctx *gin.Context) {
	id, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	var req request.UpdateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}

	announcement, err := h.svc.Update(ctx.Request.Context(), id, req.ToPatch())
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateAnnouncement -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Announcement updated successfully", announcement)
}

// HandleDeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Description  Also deletes its book form and registrations. Tickets are kept. Images are removed best-effort.
// @Tags         announcements
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope
// @Failure      400             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /announcements/{announcementID} [delete]
// @Security     BearerAuth
func (h *AnnouncementHandler) HandleDeleteAnnouncement(ctx *gin.Context) {
	id, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAnnouncement -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Announcement deleted successfully", nil)
}
