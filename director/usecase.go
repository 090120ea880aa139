package director

import (
	"context"
	"strings"
	"time"

	"moviecatalog/pagination"
)

type Service interface {
	CreateDirector(ctx context.Context, d Director) (Director, error)
	ListDirectors(ctx context.Context, p pagination.Page) ([]Director, int64, error)
	GetDirector(ctx context.Context, id int64) (Director, error)
	UpdateDirector(ctx context.Context, id int64, in UpdateInput) (Director, error)
	DeleteDirector(ctx context.Context, id int64) (int64, error)
}

type Repository interface {
	CreateDirector(ctx context.Context, d Director) (Director, error)
	ListDirectors(ctx context.Context, p pagination.Page) ([]Director, int64, error)
	GetByID(ctx context.Context, id int64) (Director, error)
	UpdateDirector(ctx context.Context, d Director) (Director, error)
	DeleteDirector(ctx context.Context, id int64) error
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	DOB         *time.Time
	Nationality *string
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) CreateDirector(ctx context.Context, d Director) (Director, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Nationality = strings.TrimSpace(d.Nationality)
	if err := d.Validate(); err != nil {
		return Director{}, err
	}
	return uc.r.CreateDirector(ctx, d)
}

func (uc *Usecase) ListDirectors(ctx context.Context, p pagination.Page) ([]Director, int64, error) {
	return uc.r.ListDirectors(ctx, p.Normalize())
}

func (uc *Usecase) GetDirector(ctx context.Context, id int64) (Director, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateDirector(ctx context.Context, id int64, in UpdateInput) (Director, error) {
	d, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Director{}, err
	}

	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.DOB != nil {
		d.DOB = *in.DOB
	}
	if in.Nationality != nil {
		d.Nationality = strings.TrimSpace(*in.Nationality)
	}
	if err := d.Validate(); err != nil {
		return Director{}, err
	}

	return uc.r.UpdateDirector(ctx, d)
}

func (uc *Usecase) DeleteDirector(ctx context.Context, id int64) (int64, error) {
	if _, err := uc.r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := uc.r.DeleteDirector(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
