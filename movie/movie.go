package movie

import (
	"fmt"
	"strings"
	"time"

	"moviecatalog/director"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/pagination"
)

var (
	ErrInvalidTitle    = errs.Errorf(errs.EINVALID, "movie: title is required")
	ErrInvalidDetail   = errs.Errorf(errs.EINVALID, "movie: detail is required")
	ErrInvalidGenres   = errs.Errorf(errs.EINVALID, "movie: at least one genre is required")
	ErrInvalidDirector = errs.Errorf(errs.EINVALID, "movie: director is required")
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie: not found")
	ErrTitleTaken      = errs.Errorf(errs.ECONFLICT, "movie: title already exists")
)

type Movie struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Detail    string            `json:"detail"`
	Director  director.Director `json:"director"`
	Genres    []genre.Genre     `json:"genres"`
	LikeCount int64             `json:"likeCount"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Version   int               `json:"version"`
}

// Sortable lists the fields a movie list can be ordered by and how each
// maps to a column and a cursor value.
var Sortable = pagination.Schema[Movie]{
	"id": {
		Name:  "id",
		Kind:  pagination.KindInt,
		Value: func(m Movie) string { return pagination.FormatInt(m.ID) },
	},
	"likeCount": {
		Name:  "like_count",
		Kind:  pagination.KindInt,
		Value: func(m Movie) string { return pagination.FormatInt(m.LikeCount) },
	},
	"title": {
		Name:  "title",
		Kind:  pagination.KindString,
		Value: func(m Movie) string { return m.Title },
	},
	"createdAt": {
		Name:  "created_at",
		Kind:  pagination.KindTime,
		Value: func(m Movie) string { return pagination.FormatTime(m.CreatedAt) },
	},
}

// ListQuery filters and pages the movie list.
type ListQuery struct {
	Title  string
	Cursor string
	Order  []string
	Take   int
}

// Page is one page of the movie list.
type Page struct {
	Data       []Movie `json:"data"`
	NextCursor *string `json:"nextCursor"`
	Count      int64   `json:"count"`
}

type CreateInput struct {
	Title      string
	Detail     string
	DirectorID int64
	GenreIDs   []int64
}

func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrInvalidTitle
	}
	if strings.TrimSpace(in.Detail) == "" {
		return ErrInvalidDetail
	}
	if in.DirectorID <= 0 {
		return ErrInvalidDirector
	}
	if len(in.GenreIDs) == 0 {
		return ErrInvalidGenres
	}
	return nil
}

// UpdateInput carries a partial update; nil fields are left untouched.
// A non-nil GenreIDs replaces the whole genre set.
type UpdateInput struct {
	Title      *string
	Detail     *string
	DirectorID *int64
	GenreIDs   []int64
}

func (in UpdateInput) Validate() error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return ErrInvalidTitle
	}
	if in.Detail != nil && strings.TrimSpace(*in.Detail) == "" {
		return ErrInvalidDetail
	}
	if in.DirectorID != nil && *in.DirectorID <= 0 {
		return ErrInvalidDirector
	}
	if in.GenreIDs != nil && len(in.GenreIDs) == 0 {
		return ErrInvalidGenres
	}
	return nil
}

func missingGenresError(missing []int64) error {
	return errs.Errorf(errs.ENOTFOUND, "movie: genres not found: %s", strings.Trim(fmt.Sprint(missing), "[]"))
}
