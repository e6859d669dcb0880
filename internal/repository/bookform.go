package repository

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var (
	ErrBookFormNotFound = dao.ErrBookFormNotFound
	ErrBookFormExists   = dao.ErrBookFormExists
)

type BookFormDAO interface {
	Insert(ctx context.Context, form dao.BookForm) (dao.BookForm, error)
	FindByID(ctx context.Context, id uint) (dao.BookForm, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) (dao.BookForm, error)
	Update(ctx context.Context, form dao.BookForm) (dao.BookForm, error)
	Delete(ctx context.Context, id uint) error
}

type BookFormRepository struct {
	dao BookFormDAO
}

func NewBookFormRepository(dao BookFormDAO) *BookFormRepository {
	return &BookFormRepository{
		dao: dao,
	}
}

func (r *BookFormRepository) Create(ctx context.Context, form domain.BookForm) (domain.BookForm, error) {
	row, err := r.domainToDao(form)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.domainToDao -> %w", err)
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *BookFormRepository) FindByID(ctx context.Context, id uint) (domain.BookForm, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *BookFormRepository) FindByAnnouncementID(ctx context.Context, announcementID uint) (domain.BookForm, error) {
	found, err := r.dao.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.dao.FindByAnnouncementID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *BookFormRepository) Update(ctx context.Context, form domain.BookForm) (domain.BookForm, error) {
	row, err := r.domainToDao(form)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.domainToDao -> %w", err)
	}

	updated, err := r.dao.Update(ctx, row)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *BookFormRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *BookFormRepository) domainToDao(f domain.BookForm) (dao.BookForm, error) {
	questions := f.Questions
	if questions == nil {
		questions = []domain.Question{}
	}

	questionsJSON, err := toJSON(questions)
	if err != nil {
		return dao.BookForm{}, err
	}

	return dao.BookForm{
		ID:             f.ID,
		AnnouncementID: f.AnnouncementID,
		Questions:      questionsJSON,
		IsActive:       f.IsActive,
	}, nil
}

func (r *BookFormRepository) daoToDomain(f dao.BookForm) (domain.BookForm, error) {
	form := domain.BookForm{
		ID:             f.ID,
		AnnouncementID: f.AnnouncementID,
		Questions:      []domain.Question{},
		IsActive:       f.IsActive,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
	if err := fromJSON(f.Questions, &form.Questions); err != nil {
		return domain.BookForm{}, fmt.Errorf("book form %d questions -> %w", f.ID, err)
	}

	return form, nil
}
