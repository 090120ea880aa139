package genre

import (
	"strings"
	"time"

	"moviecatalog/errs"
)

var (
	ErrInvalidName   = errs.Errorf(errs.EINVALID, "genre: name is required")
	ErrGenreNotFound = errs.Errorf(errs.ENOTFOUND, "genre: not found")
	ErrGenreExists   = errs.Errorf(errs.ECONFLICT, "genre: name already exists")
)

type Genre struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"version"`
}

func (g Genre) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
