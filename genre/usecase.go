package genre

import (
	"context"
	"errors"
	"strings"

	"moviecatalog/pagination"
)

type Service interface {
	CreateGenre(ctx context.Context, g Genre) (Genre, error)
	ListGenres(ctx context.Context, p pagination.Page) ([]Genre, int64, error)
	GetGenre(ctx context.Context, id int64) (Genre, error)
	UpdateGenre(ctx context.Context, id int64, name string) (Genre, error)
	DeleteGenre(ctx context.Context, id int64) (int64, error)
}

type Repository interface {
	CreateGenre(ctx context.Context, g Genre) (Genre, error)
	ListGenres(ctx context.Context, p pagination.Page) ([]Genre, int64, error)
	GetByID(ctx context.Context, id int64) (Genre, error)
	GetByName(ctx context.Context, name string) (Genre, error)
	UpdateGenre(ctx context.Context, g Genre) (Genre, error)
	DeleteGenre(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) CreateGenre(ctx context.Context, g Genre) (Genre, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return Genre{}, err
	}
	if err := uc.ensureNameFree(ctx, g.Name, 0); err != nil {
		return Genre{}, err
	}
	return uc.r.CreateGenre(ctx, g)
}

func (uc *Usecase) ListGenres(ctx context.Context, p pagination.Page) ([]Genre, int64, error) {
	return uc.r.ListGenres(ctx, p.Normalize())
}

func (uc *Usecase) GetGenre(ctx context.Context, id int64) (Genre, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateGenre(ctx context.Context, id int64, name string) (Genre, error) {
	g, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Genre{}, err
	}

	g.Name = strings.TrimSpace(name)
	if err := g.Validate(); err != nil {
		return Genre{}, err
	}
	if err := uc.ensureNameFree(ctx, g.Name, id); err != nil {
		return Genre{}, err
	}
	return uc.r.UpdateGenre(ctx, g)
}

func (uc *Usecase) DeleteGenre(ctx context.Context, id int64) (int64, error) {
	if _, err := uc.r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := uc.r.DeleteGenre(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// ensureNameFree fails with ErrGenreExists when another genre than self owns name.
func (uc *Usecase) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := uc.r.GetByName(ctx, name)
	if errors.Is(err, ErrGenreNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrGenreExists
	}
	return nil
}
