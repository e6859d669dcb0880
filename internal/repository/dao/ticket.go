package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketExists          = errors.New("ticket already issued")
	ErrTicketAlreadyRedeemed = errors.New("ticket already redeemed")
)

type Ticket struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_tickets_user_announcement"`
	AnnouncementID uint      `gorm:"not null;uniqueIndex:idx_tickets_user_announcement"`
	Token          string    `gorm:"not null;uniqueIndex:idx_tickets_token"`
	Attendance     bool      `gorm:"not null;default:false"`
	RedeemedAt     *time.Time
	CreatedAt      time.Time

	User User `gorm:"foreignKey:UserID"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// FindOrInsert returns the ticket held by t.UserID for t.AnnouncementID,
// inserting t when there is none. created reports whether t was inserted.
// A concurrent insert for the same pair loses on the unique index and falls
// back to the winner's row.
func (d *TicketDAO) FindOrInsert(ctx context.Context, t Ticket) (ticket Ticket, created bool, err error) {
	found, err := d.FindByUserAndAnnouncement(ctx, t.UserID, t.AnnouncementID)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, ErrTicketNotFound) {
		return Ticket{}, false, err
	}

	result := d.db.WithContext(ctx).Omit("User").Create(&t)
	if result.Error == nil {
		return t, true, nil
	}
	if violates(result.Error, "idx_tickets_token") || violates(result.Error, "tickets.token") {
		return Ticket{}, false, ErrTicketExists
	}
	if _, ok := uniqueViolation(result.Error); !ok {
		return Ticket{}, false, result.Error
	}

	found, err = d.FindByUserAndAnnouncement(ctx, t.UserID, t.AnnouncementID)
	if err != nil {
		return Ticket{}, false, err
	}

	return found, false, nil
}

func (d *TicketDAO) FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (Ticket, error) {
	var t Ticket

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return t, nil
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// FindByAnnouncementID lists the tickets of an event with their holders.
func (d *TicketDAO) FindByAnnouncementID(ctx context.Context, announcementID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Preload("User").
		Where("announcement_id = ?", announcementID).
		Order("id").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// Redeem marks the ticket matching (token, announcementID) as attended and
// adds points to its holder, in one transaction. The attendance flip is a
// conditional update so that of two concurrent scans only one can match the
// row; the loser gets ErrTicketAlreadyRedeemed and awards nothing.
func (d *TicketDAO) Redeem(ctx context.Context, token string, announcementID uint, points int, at time.Time) (User, error) {
	var holder User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Ticket{}).
			Where("token = ? AND announcement_id = ? AND attendance = ?", token, announcementID, false).
			Updates(map[string]any{"attendance": true, "redeemed_at": at})
		if result.Error != nil {
			return result.Error
		}

		var t Ticket
		if err := tx.Where("token = ? AND announcement_id = ?", token, announcementID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		if result.RowsAffected == 0 {
			return ErrTicketAlreadyRedeemed
		}

		score := tx.Model(&User{}).Where("id = ?", t.UserID).Update("score", gorm.Expr("score + ?", points))
		if score.Error != nil {
			return score.Error
		}
		if score.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return tx.First(&holder, t.UserID).Error
	})
	if err != nil {
		return User{}, err
	}

	return holder, nil
}

// FindHolder loads the owner of the ticket matching (token, announcementID).
func (d *TicketDAO) FindHolder(ctx context.Context, token string, announcementID uint) (User, error) {
	var t Ticket

	result := d.db.WithContext(ctx).Preload("User").
		Where("token = ? AND announcement_id = ?", token, announcementID).
		First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrTicketNotFound
		}

		return User{}, result.Error
	}

	return t.User, nil
}
