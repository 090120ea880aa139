package director

import (
	"strings"
	"time"

	"moviecatalog/errs"
)

var (
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "director: name is required")
	ErrInvalidDOB         = errs.Errorf(errs.EINVALID, "director: date of birth is required")
	ErrInvalidNationality = errs.Errorf(errs.EINVALID, "director: nationality is required")
	ErrDirectorNotFound   = errs.Errorf(errs.ENOTFOUND, "director: not found")
)

type Director struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DOB         time.Time `json:"dob"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int       `json:"version"`
}

func (d Director) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidName
	}
	if d.DOB.IsZero() {
		return ErrInvalidDOB
	}
	if strings.TrimSpace(d.Nationality) == "" {
		return ErrInvalidNationality
	}
	return nil
}

var ErrDirectorInUse = errs.Errorf(errs.ECONFLICT, "director: still credited on movies")
