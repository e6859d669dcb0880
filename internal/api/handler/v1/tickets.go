package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/request"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/ticketpdf"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

type TicketService interface {
	Issue(ctx context.Context, userID, announcementID uint) (domain.IssuedTicket, error)
	Validate(ctx context.Context, token string, announcementID uint) (domain.ScanResult, error)
	ListMine(ctx context.Context, userID uint) ([]domain.Ticket, error)
	Attendance(ctx context.Context, announcementID uint) (domain.AttendanceReport, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleDownloadTicket godoc
// @Summary      Download the ticket of an announcement
// @Description  Issues the member's ticket on first call and streams it as a PDF with a QR code. Later calls return the same token.
// @Tags         tickets
// @Produce      application/pdf
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {file}    binary
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /tickets/download/{announcementID} [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleDownloadTicket(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	issued, err := h.svc.Issue(ctx.Request.Context(), userID, announcementID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotRegistered))
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", announcementID))
		default:
			err = fmt.Errorf("v1.HandleDownloadTicket -> h.svc.Issue -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	// Rendered in memory so a failure can still be reported as JSON.
	var pdf bytes.Buffer
	err = ticketpdf.Render(&pdf, ticketpdf.TicketView{
		EventTitle:    issued.Announcement.Title,
		Date:          issued.Announcement.Date,
		Time:          issued.Announcement.Time,
		Location:      issued.Announcement.Location,
		AttendeeName:  issued.Holder.Name,
		AttendeeEmail: issued.Holder.Email,
		Token:         issued.Ticket.Token,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleDownloadTicket -> ticketpdf.Render -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ticketpdf.Filename(issued.Announcement.Title)))
	ctx.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// HandleListMyTickets godoc
// @Summary      Own tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Ticket}
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/me [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListMyTickets(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyTickets -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Tickets retrieved successfully", tickets)
}

// HandleValidateTicket godoc
// @Summary      Scan a ticket
// @Description  Redeems a token for the announcement it was issued for. The first scan awards +5 points (status success); later scans report status warning and change nothing; unknown tokens or tokens of another announcement report status error with a 404.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      request.ValidateTicketRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.ScanResult}
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Envelope{data=domain.ScanResult}
// @Failure      500      {object}  response.Err
// @Router       /tickets/validate [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleValidateTicket(ctx *gin.Context) {
	var req request.ValidateTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := h.svc.Validate(ctx.Request.Context(), req.Token, req.AnnouncementID)
	if err != nil {
		err = fmt.Errorf("v1.HandleValidateTicket -> h.svc.Validate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	status := http.StatusOK
	if result.Status == domain.ScanError {
		status = http.StatusNotFound
	}

	response.Render(ctx, status, result.Message, result)
}

// HandleAttendance godoc
// @Summary      Attendance of an announcement
// @Description  Issued tickets with their holders and redemption state.
// @Tags         tickets
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      200             {object}  response.Envelope{data=domain.AttendanceReport}
// @Failure      400             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /tickets/announcement/{announcementID} [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleAttendance(ctx *gin.Context) {
	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}

	report, err := h.svc.Attendance(ctx.Request.Context(), announcementID)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "id", announcementID))
			return
		}

		err = fmt.Errorf("v1.HandleAttendance -> h.svc.Attendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "Attendance retrieved successfully", report)
}
