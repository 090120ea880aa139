package httpserver

import (
	"strconv"
	"strings"
	"time"

	"moviecatalog/director"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pagination"
	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidBody = errs.Errorf(errs.EINVALID, "invalid request body")
	ErrInvalidID   = errs.Errorf(errs.EINVALID, "id must be a positive integer")
)

// bind decodes the request into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return ErrInvalidBody
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

type PageRequest struct {
	Page int `query:"page" validate:"omitempty,min=1"`
	Take int `query:"take" validate:"omitempty,min=1,max=100"`
}

func (r PageRequest) ToPage() pagination.Page {
	return pagination.Page{Page: r.Page, Take: r.Take}.Normalize()
}

// ListMoviesRequest accepts order either repeated (?order=a&order=b) or as
// a comma separated list (?order=a,b).
type ListMoviesRequest struct {
	Title  string   `query:"title" validate:"max=255"`
	Cursor string   `query:"cursor"`
	Order  []string `query:"order" validate:"omitempty,dive,order"`
	Take   int      `query:"take" validate:"omitempty,min=1,max=100"`
}

func (r *ListMoviesRequest) splitOrder() {
	var tokens []string
	for _, raw := range r.Order {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	r.Order = tokens
}

func (r ListMoviesRequest) ToQuery() movie.ListQuery {
	return movie.ListQuery{
		Title:  strings.TrimSpace(r.Title),
		Cursor: r.Cursor,
		Order:  r.Order,
		Take:   r.Take,
	}
}

type CreateMovieRequest struct {
	Title      string  `json:"title" validate:"required,notblank,max=255"`
	Detail     string  `json:"detail" validate:"required,notblank"`
	DirectorID int64   `json:"directorId" validate:"required,min=1"`
	GenreIDs   []int64 `json:"genreIds" validate:"required,min=1,dive,min=1"`
}

func (r CreateMovieRequest) ToInput() movie.CreateInput {
	return movie.CreateInput{
		Title:      r.Title,
		Detail:     r.Detail,
		DirectorID: r.DirectorID,
		GenreIDs:   r.GenreIDs,
	}
}

type UpdateMovieRequest struct {
	Title      *string `json:"title" validate:"omitempty,notblank,max=255"`
	Detail     *string `json:"detail" validate:"omitempty,notblank"`
	DirectorID *int64  `json:"directorId" validate:"omitempty,min=1"`
	GenreIDs   []int64 `json:"genreIds" validate:"omitempty,min=1,dive,min=1"`
}

func (r UpdateMovieRequest) ToInput() movie.UpdateInput {
	return movie.UpdateInput{
		Title:      r.Title,
		Detail:     r.Detail,
		DirectorID: r.DirectorID,
		GenreIDs:   r.GenreIDs,
	}
}

type CreateDirectorRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	DOB         string `json:"dob" validate:"required,datetime=2006-01-02"`
	Nationality string `json:"nationality" validate:"required,notblank,max=100"`
}

func (r CreateDirectorRequest) ToDirector() director.Director {
	dob, _ := time.Parse(dateLayout, r.DOB)
	return director.Director{
		Name:        r.Name,
		DOB:         dob,
		Nationality: r.Nationality,
	}
}

type UpdateDirectorRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	DOB         *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitempty,notblank,max=100"`
}

func (r UpdateDirectorRequest) ToInput() director.UpdateInput {
	in := director.UpdateInput{
		Name:        r.Name,
		Nationality: r.Nationality,
	}
	if r.DOB != nil {
		dob, _ := time.Parse(dateLayout, *r.DOB)
		in.DOB = &dob
	}
	return in
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (r GenreRequest) ToGenre() genre.Genre {
	return genre.Genre{Name: r.Name}
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,notblank,max=72"`
	Role     *int   `json:"role" validate:"omitempty,min=0,max=2"`
}

// ToUser defaults the role to a regular user; the zero Role is admin.
func (r CreateUserRequest) ToUser() user.User {
	role := user.RoleUser
	if r.Role != nil {
		role = user.Role(*r.Role)
	}
	return user.User{
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
	}
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,notblank,max=72"`
	Role     *int    `json:"role" validate:"omitempty,min=0,max=2"`
}

func (r UpdateUserRequest) ToInput() user.UpdateInput {
	in := user.UpdateInput{
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Role != nil {
		role := user.Role(*r.Role)
		in.Role = &role
	}
	return in
}
