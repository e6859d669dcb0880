package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var (
	ErrTicketNotFound        = dao.ErrTicketNotFound
	ErrTicketExists          = dao.ErrTicketExists
	ErrTicketAlreadyRedeemed = dao.ErrTicketAlreadyRedeemed
)

type TicketDAO interface {
	FindOrInsert(ctx context.Context, t dao.Ticket) (dao.Ticket, bool, error)
	FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (dao.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Ticket, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) ([]dao.Ticket, error)
	Redeem(ctx context.Context, token string, announcementID uint, points int, at time.Time) (dao.User, error)
	FindHolder(ctx context.Context, token string, announcementID uint) (dao.User, error)
}

type TicketRepository struct {
	dao   TicketDAO
	uRepo *UserRepository
}

func NewTicketRepository(dao TicketDAO, uRepo *UserRepository) *TicketRepository {
	return &TicketRepository{
		dao:   dao,
		uRepo: uRepo,
	}
}

func (r *TicketRepository) FindOrCreate(ctx context.Context, t domain.Ticket) (domain.Ticket, bool, error) {
	ticket, created, err := r.dao.FindOrInsert(ctx, dao.Ticket{
		UserID:         t.UserID,
		AnnouncementID: t.AnnouncementID,
		Token:          t.Token,
	})
	if err != nil {
		return domain.Ticket{}, false, fmt.Errorf("r.dao.FindOrInsert -> %w", err)
	}

	return r.daoToDomain(ticket), created, nil
}

func (r *TicketRepository) FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (domain.Ticket, error) {
	found, err := r.dao.FindByUserAndAnnouncement(ctx, userID, announcementID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByUserAndAnnouncement -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TicketRepository) FindByAnnouncementID(ctx context.Context, announcementID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAnnouncementID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// Redeem flips the ticket to attended and credits its holder. It returns the
// holder with the updated score.
func (r *TicketRepository) Redeem(ctx context.Context, token string, announcementID uint, points int, at time.Time) (domain.User, error) {
	holder, err := r.dao.Redeem(ctx, token, announcementID, points, at)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Redeem -> %w", err)
	}

	return r.uRepo.daoToDomain(holder), nil
}

func (r *TicketRepository) FindHolder(ctx context.Context, token string, announcementID uint) (domain.User, error) {
	holder, err := r.dao.FindHolder(ctx, token, announcementID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindHolder -> %w", err)
	}

	return r.uRepo.daoToDomain(holder), nil
}

func (r *TicketRepository) daosToDomain(tickets []dao.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = r.daoToDomain(t)
	}
	return out
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	ticket := domain.Ticket{
		ID:             t.ID,
		UserID:         t.UserID,
		AnnouncementID: t.AnnouncementID,
		Token:          t.Token,
		Attendance:     t.Attendance,
		RedeemedAt:     t.RedeemedAt,
		CreatedAt:      t.CreatedAt,
	}
	if t.User.ID != 0 {
		holder := r.uRepo.daoToDomain(t.User).Public()
		ticket.Holder = &holder
	}

	return ticket
}
