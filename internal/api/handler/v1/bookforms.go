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

type BookFormService interface {
	Create(ctx context.Context, form domain.BookForm) (domain.BookForm, error)
	Get(ctx context.Context, id uint) (domain.BookForm, error)
	GetByAnnouncement(ctx context.Context, announcementID uint) (domain.BookForm, error)
	Update(ctx context.Context, id uint, questions []domain.Question, isActive *bool) (domain.BookForm, error)
	Delete(ctx context.Context, id uint) error
}

type BookFormHandler struct {
	svc BookFormService
}

func NewBookFormHandler(svc BookFormService) *BookFormHandler {
	return &BookFormHandler{
		svc: svc,
	}
}

// HandleCreateBookForm godoc
// @Summary      Attach a registration form to an announcement
// @Tags         bookforms
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateBookFormRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.BookForm}
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /bookforms [post]
// @Security     BearerAuth
func (h *BookFormHandler) HandleCreateBookForm(ctx *gin.Context) {
	var req request.CreateBookFormRequest
	if !bindJSON(ctx, &req) {
		return
	}

	form, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidForm):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", req.AnnouncementID))
		case errors.Is(err, service.ErrBookFormExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrBookFormExists))
		default:
			err = fmt.Errorf("v1.HandleCreateBookForm -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.Render(ctx, http.StatusCreated, "Book form created successfully", form)
}

// HandleGetBookForm godoc
// @Summary      Get a registration form
// @Tags         bookforms
// @Produce      json
// @Param        bookFormID  path      int  true  "book form ID"
// @Success      200         {object}  response.Envelope{data=domain.BookForm}
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookforms/{bookFormID} [get]
func (h *BookFormHandler) HandleGetBookForm(ctx *gin.Context) {
	id, ok := parseID(ctx, "bookFormID")
	if !ok {
		return
	}

	form, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("book form", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetBookForm -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Book form retrieved successfully", form)
}

// HandleGetAnnouncementBookForm godoc
// @Summary      Get the registration form of an announcement
// @Tags         bookforms
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope{data=domain.BookForm}
// @Failure      400             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /bookforms/announcement/{announcementID} [get]
func (h *BookFormHandler) HandleGetAnnouncementBookForm(ctx *gin.Context) {
	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	form, err := h.svc.GetByAnnouncement(ctx.Request.Context(), announcementID)
	if err != nil {
		if errors.Is(err, service.ErrBookFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("book form", "announcementId", announcementID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAnnouncementBookForm -> h.svc.GetByAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Book form retrieved successfully", form)
}

// HandleUpdateBookForm godoc
// @Summary      Update a registration form
// @Description  Replaces the questions and/or opens or closes registrations.
// @Tags         bookforms
// @Accept       json
// @Produce      json
// @Param        bookFormID  path      int                            true  "book form ID"
// @Param        request     body      request.UpdateBookFormRequest  true  "request body"
// @Success      200         {object}  response.Envelope{data=domain.BookForm}
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookforms/{bookFormID} [patch]
// @Security     BearerAuth
func (h *BookFormHandler) HandleUpdateBookForm(ctx *gin.Context) {
	id, ok := parseID(ctx, "bookFormID")
	if !ok {
		return
	}

	var req request.UpdateBookFormRequest
	if !bindJSON(ctx, &req) {
		return
	}

	form, err := h.svc.Update(ctx.Request.Context(), id, req.DomainQuestions(), req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidForm):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrBookFormNotFound):
			response.RenderErr(ctx, response.ErrNotFound("book form", "id", id))
		default:
			err = fmt.Errorf("v1.HandleUpdateBookForm -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.Render(ctx, http.StatusOK, "Book form updated successfully", form)
}

// HandleDeleteBookForm godoc
// @Summary      Delete a registration form
// @Tags         bookforms
// @Produce      json
// @Param        bookFormID  path      int  true  "book form ID"
// @Success      200         {object}  response.Envelope
// @Failure      400         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookforms/{bookFormID} [delete]
// @Security     BearerAuth
func (h *BookFormHandler) HandleDeleteBookForm(ctx *gin.Context) {
	id, ok := parseID(ctx, "bookFormID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBookFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("book form", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteBookForm -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Book form deleted successfully", nil)
}
