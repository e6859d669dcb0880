package repository

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var ErrAnnouncementNotFound = dao.ErrAnnouncementNotFound

type AnnouncementDAO interface {
	Insert(ctx context.Context, a dao.Announcement) (dao.Announcement, error)
	FindByID(ctx context.Context, id uint) (dao.Announcement, error)
	Find(ctx context.Context, category string, active *bool, limit int) ([]dao.Announcement, error)
	FindLatest(ctx context.Context, limit int) ([]dao.Announcement, error)
	Update(ctx context.Context, a dao.Announcement) (dao.Announcement, error)
	Delete(ctx context.Context, id uint) (dao.Announcement, error)
}

type AnnouncementRepository struct {
	dao AnnouncementDAO
}

func NewAnnouncementRepository(dao AnnouncementDAO) *AnnouncementRepository {
	return &AnnouncementRepository{
		dao: dao,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	row, err := r.domainToDao(a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.domainToDao -> %w", err)
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, id uint) (domain.Announcement, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *AnnouncementRepository) Find(ctx context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error) {
	found, err := r.dao.Find(ctx, filter.Category, filter.Active, 0)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *AnnouncementRepository) FindLatest(ctx context.Context, limit int) ([]domain.Announcement, error) {
	found, err := r.dao.FindLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLatest -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *AnnouncementRepository) Update(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	row, err := r.domainToDao(a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.domainToDao -> %w", err)
	}

	updated, err := r.dao.Update(ctx, row)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) (domain.Announcement, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return r.daoToDomain(deleted)
}

func (r *AnnouncementRepository) domainToDao(a domain.Announcement) (dao.Announcement, error) {
	organizers := a.Organizers
	if organizers == nil {
		organizers = []domain.Organizer{}
	}
	schedule := a.Schedule
	if schedule == nil {
		schedule = []domain.ScheduleItem{}
	}

	organizersJSON, err := toJSON(organizers)
	if err != nil {
		return dao.Announcement{}, err
	}
	scheduleJSON, err := toJSON(schedule)
	if err != nil {
		return dao.Announcement{}, err
	}

	return dao.Announcement{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Date:            a.Date,
		Time:            a.Time,
		Location:        a.Location,
		Category:        a.Category,
		MainImage:       a.MainImage,
		Organizers:      organizersJSON,
		Schedule:        scheduleJSON,
		IsActive:        a.IsActive,
		RegistrationURL: a.RegistrationURL,
	}, nil
}

func (r *AnnouncementRepository) daosToDomain(announcements []dao.Announcement) ([]domain.Announcement, error) {
	out := make([]domain.Announcement, len(announcements))
	for i, a := range announcements {
		announcement, err := r.daoToDomain(a)
		if err != nil {
			return nil, err
		}
		out[i] = announcement
	}
	return out, nil
}

func (r *AnnouncementRepository) daoToDomain(a dao.Announcement) (domain.Announcement, error) {
	announcement := domain.Announcement{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Date:            a.Date,
		Time:            a.Time,
		Location:        a.Location,
		Category:        a.Category,
		MainImage:       a.MainImage,
		Organizers:      []domain.Organizer{},
		Schedule:        []domain.ScheduleItem{},
		IsActive:        a.IsActive,
		RegistrationURL: a.RegistrationURL,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if err := fromJSON(a.Organizers, &announcement.Organizers); err != nil {
		return domain.Announcement{}, fmt.Errorf("announcement %d organizers -> %w", a.ID, err)
	}
	if err := fromJSON(a.Schedule, &announcement.Schedule); err != nil {
		return domain.Announcement{}, fmt.Errorf("announcement %d schedule -> %w", a.ID, err)
	}
	if a.BookForm != nil {
		id := a.BookForm.ID
		announcement.BookFormID = &id
	}

	return announcement, nil
}
