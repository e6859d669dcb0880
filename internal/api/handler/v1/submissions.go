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

type SubmissionService interface {
	Submit(ctx context.Context, userID, announcementID uint, raw map[string]any) (domain.BookSubmission, error)
	ListMine(ctx context.Context, userID uint) ([]domain.BookSubmission, error)
	Check(ctx context.Context, userID, announcementID uint) (*domain.BookSubmission, error)
	ListByAnnouncement(ctx context.Context, announcementID uint) ([]domain.BookSubmission, error)
	Get(ctx context.Context, actor domain.User, id uint) (domain.BookSubmission, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
}

type SubmissionHandler struct {
	svc SubmissionService
}

func NewSubmissionHandler(svc SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		svc: svc,
	}
}

// HandleSubmit godoc
// @Summary      Register for an announcement
// @Description  Answers are keyed by question id and checked against the announcement's form. One registration per member and announcement.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSubmissionRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.BookSubmission}
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleSubmit(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateSubmissionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	submission, err := h.svc.Submit(ctx.Request.Context(), userID, req.AnnouncementID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAnswer):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrFormClosed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrFormClosed))
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", req.AnnouncementID))
		case errors.Is(err, service.ErrBookFormNotFound):
			response.RenderErr(ctx, response.ErrNotFound("book form", "announcementId", req.AnnouncementID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.Render(ctx, http.StatusCreated, "Registration submitted successfully", submission)
}

// HandleListMySubmissions godoc
// @Summary      Own registrations
// @Tags         submissions
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.BookSubmission}
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions/me [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListMySubmissions(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissions, err := h.svc.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMySubmissions -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Submissions retrieved successfully", submissions)
}

// HandleCheckRegistration godoc
// @Summary      Check own registration for an announcement
// @Tags         submissions
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope{data=response.Registration}
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /submissions/check/{announcementID} [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleCheckRegistration(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	submission, err := h.svc.Check(ctx.Request.Context(), userID, announcementID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckRegistration -> h.svc.Check -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Registration checked", response.Registration{
		Registered: submission != nil,
		Submission: submission,
	})
}

// HandleListAnnouncementSubmissions godoc
// @Summary      Registrations of an announcement
// @Tags         submissions
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope{data=[]domain.BookSubmission}
// @Failure      400             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /submissions/announcement/{announcementID} [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleListAnnouncementSubmissions(ctx *gin.Context) {
	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	submissions, err := h.svc.ListByAnnouncement(ctx.Request.Context(), announcementID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnnouncementSubmissions -> h.svc.ListByAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Submissions retrieved successfully", submissions)
}

// HandleGetSubmission godoc
// @Summary      Get a registration
// @Description  Visible to its owner and to admins.
// @Tags         submissions
// @Produce      json
// @Param        submissionID  path      int  true  "submission ID"
// @Success      200           {object}  response.Envelope{data=domain.BookSubmission}
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /submissions/{submissionID} [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetSubmission(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, ok := parseID(ctx, "submissionID")
	if !ok {
		return
	}

	submission, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		h.renderLookupErr(ctx, "v1.HandleGetSubmission -> h.svc.Get", id, err)
		return
	}

	response.Render(ctx, http.StatusOK, "Submission retrieved successfully", submission)
}

// HandleDeleteSubmission godoc
// @Summary      Cancel a registration
// @Description  Allowed to its owner and to admins.
// @Tags         submissions
// @Produce      json
// @Param        submissionID  path      int  true  "submission ID"
// @Success      200           {object}  response.Envelope
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /submissions/{submissionID} [delete]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleDeleteSubmission(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, ok := parseID(ctx, "submissionID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		h.renderLookupErr(ctx, "v1.HandleDeleteSubmission -> h.svc.Delete", id, err)
		return
	}

	response.Render(ctx, http.StatusOK, "Submission deleted successfully", nil)
}

func (h *SubmissionHandler) renderLookupErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("submission", "id", id))
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}
