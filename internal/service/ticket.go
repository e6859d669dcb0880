package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/metrics"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

const maxTokenAttempts = 3

var (
	ErrNotRegistered  = errors.New("you must register for this announcement before getting a ticket")
	ErrTicketNotFound = repository.ErrTicketNotFound
)

type TicketRepository interface {
	FindOrCreate(ctx context.Context, t domain.Ticket) (domain.Ticket, bool, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) ([]domain.Ticket, error)
	Redeem(ctx context.Context, token string, announcementID uint, points int, at time.Time) (domain.User, error)
	FindHolder(ctx context.Context, token string, announcementID uint) (domain.User, error)
}

type RegistrationFinder interface {
	FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (domain.BookSubmission, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// ScanPublisher receives every validation outcome, e.g. to feed live scanner
// screens. Publish must not block.
type ScanPublisher interface {
	Publish(result domain.ScanResult)
}

type TicketService struct {
	repo          TicketRepository
	announcements AnnouncementFinder
	registrations RegistrationFinder
	users         UserFinder
	publisher     ScanPublisher

	newToken func() string
	now      func() time.Time
}

func NewTicketService(
	repo TicketRepository,
	announcements AnnouncementFinder,
	registrations RegistrationFinder,
	users UserFinder,
	publisher ScanPublisher,
) *TicketService {
	return &TicketService{
		repo:          repo,
		announcements: announcements,
		registrations: registrations,
		users:         users,
		publisher:     publisher,
		newToken:      uuid.NewString,
		now:           time.Now,
	}
}

// Issue returns the ticket of userID for an announcement, creating it on the
// first call. Later calls return the same token.
func (s *TicketService) Issue(ctx context.Context, userID, announcementID uint) (domain.IssuedTicket, error) {
	announcement, err := s.announcements.FindByID(ctx, announcementID)
	if err != nil {
		return domain.IssuedTicket{}, fmt.Errorf("s.announcements.FindByID -> %w", err)
	}

	if _, err = s.registrations.FindByUserAndAnnouncement(ctx, userID, announcementID); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.IssuedTicket{}, ErrNotRegistered
		}

		return domain.IssuedTicket{}, fmt.Errorf("s.registrations.FindByUserAndAnnouncement -> %w", err)
	}

	holder, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.IssuedTicket{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	var (
		ticket  domain.Ticket
		created bool
	)
	for attempt := 1; ; attempt++ {
		ticket, created, err = s.repo.FindOrCreate(ctx, domain.Ticket{
			UserID:         userID,
			AnnouncementID: announcementID,
			Token:          s.newToken(),
		})
		if !errors.Is(err, repository.ErrTicketExists) || attempt == maxTokenAttempts {
			break
		}
	}
	if err != nil {
		return domain.IssuedTicket{}, fmt.Errorf("s.repo.FindOrCreate -> %w", err)
	}
	if created {
		metrics.TicketIssued()
	}

	return domain.IssuedTicket{
		Ticket:       ticket,
		Announcement: announcement,
		Holder:       holder,
	}, nil
}

// Validate redeems a scanned token for an announcement. A token only matches
// the announcement it was issued for. The first redemption awards
// domain.AttendancePoints to the holder; any later one is reported as a
// warning and changes nothing.
func (s *TicketService) Validate(ctx context.Context, token string, announcementID uint) (domain.ScanResult, error) {
	result := domain.ScanResult{
		AnnouncementID: announcementID,
		ScannedAt:      s.now().UTC(),
	}

	holder, err := s.repo.Redeem(ctx, token, announcementID, domain.AttendancePoints, result.ScannedAt)
	switch {
	case err == nil:
		profile := holder.Public()
		result.Status = domain.ScanSuccess
		result.Message = domain.MsgTicketValidated
		result.User = &profile

	case errors.Is(err, repository.ErrTicketAlreadyRedeemed):
		result.Status = domain.ScanWarning
		result.Message = domain.MsgAlreadyScanned
		if h, herr := s.repo.FindHolder(ctx, token, announcementID); herr == nil {
			profile := h.Public()
			result.User = &profile
		}

	case errors.Is(err, repository.ErrTicketNotFound):
		result.Status = domain.ScanError
		result.Message = domain.MsgInvalidTicket

	default:
		return domain.ScanResult{}, fmt.Errorf("s.repo.Redeem -> %w", err)
	}

	metrics.TicketScanned(string(result.Status))
	if s.publisher != nil {
		s.publisher.Publish(result)
	}

	return result, nil
}

func (s *TicketService) ListMine(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return tickets, nil
}

// Attendance lists the issued tickets of an announcement with their holders.
func (s *TicketService) Attendance(ctx context.Context, announcementID uint) (domain.AttendanceReport, error) {
	if _, err := s.announcements.FindByID(ctx, announcementID); err != nil {
		return domain.AttendanceReport{}, fmt.Errorf("s.announcements.FindByID -> %w", err)
	}

	tickets, err := s.repo.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return domain.AttendanceReport{}, fmt.Errorf("s.repo.FindByAnnouncementID -> %w", err)
	}

	report := domain.AttendanceReport{
		AnnouncementID: announcementID,
		Issued:         len(tickets),
		Tickets:        tickets,
	}
	for _, t := range tickets {
		if t.Attendance {
			report.Attended++
		}
	}

	return report, nil
}
