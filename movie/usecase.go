package movie

import (
	"context"
	"strings"

	"moviecatalog/director"
	"moviecatalog/genre"
	"moviecatalog/pagination"
)

type Service interface {
	ListMovies(ctx context.Context, q ListQuery) (Page, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, in CreateInput) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, in UpdateInput) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) (int64, error)
}

// Repository persists movies. ListMovies applies the page plan's scope and
// returns the rows it fetched together with the count of all rows matching
// title.
type Repository interface {
	ListMovies(ctx context.Context, title string, q pagination.Query) ([]Movie, int64, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, m Movie) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type DirectorFinder interface {
	GetByID(ctx context.Context, id int64) (director.Director, error)
}

type GenreFinder interface {
	FindByIDs(ctx context.Context, ids []int64) ([]genre.Genre, error)
}

type Usecase struct {
	r         Repository
	directors DirectorFinder
	genres    GenreFinder
}

func NewUsecase(r Repository, directors DirectorFinder, genres GenreFinder) *Usecase {
	return &Usecase{
		r:         r,
		directors: directors,
		genres:    genres,
	}
}

func (uc *Usecase) ListMovies(ctx context.Context, lq ListQuery) (Page, error) {
	q, err := pagination.Build(pagination.Request{
		Cursor: lq.Cursor,
		Order:  lq.Order,
		Take:   lq.Take,
	}, Sortable)
	if err != nil {
		return Page{}, err
	}

	rows, count, err := uc.r.ListMovies(ctx, strings.TrimSpace(lq.Title), q)
	if err != nil {
		return Page{}, err
	}

	data, next, err := pagination.Paginate(rows, q, Sortable)
	if err != nil {
		return Page{}, err
	}
	if data == nil {
		data = []Movie{}
	}

	return Page{
		Data:       data,
		NextCursor: next,
		Count:      count,
	}, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) CreateMovie(ctx context.Context, in CreateInput) (Movie, error) {
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}

	d, err := uc.directors.GetByID(ctx, in.DirectorID)
	if err != nil {
		return Movie{}, err
	}
	genres, err := uc.findGenres(ctx, in.GenreIDs)
	if err != nil {
		return Movie{}, err
	}

	return uc.r.CreateMovie(ctx, Movie{
		Title:    strings.TrimSpace(in.Title),
		Detail:   in.Detail,
		Director: d,
		Genres:   genres,
	})
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, in UpdateInput) (Movie, error) {
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}

	m, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}

	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Detail != nil {
		m.Detail = *in.Detail
	}
	if in.DirectorID != nil {
		d, err := uc.directors.GetByID(ctx, *in.DirectorID)
		if err != nil {
			return Movie{}, err
		}
		m.Director = d
	}
	if in.GenreIDs != nil {
		genres, err := uc.findGenres(ctx, in.GenreIDs)
		if err != nil {
			return Movie{}, err
		}
		m.Genres = genres
	}

	return uc.r.UpdateMovie(ctx, m)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	if _, err := uc.r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := uc.r.DeleteMovie(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// findGenres loads every id or fails naming the ones that do not exist.
func (uc *Usecase) findGenres(ctx context.Context, ids []int64) ([]genre.Genre, error) {
	ids = dedupe(ids)
	found, err := uc.genres.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) == len(ids) {
		return found, nil
	}

	seen := make(map[int64]bool, len(found))
	for _, g := range found {
		seen[g.ID] = true
	}
	var missing []int64
	for _, id := range ids {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return nil, missingGenresError(missing)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
