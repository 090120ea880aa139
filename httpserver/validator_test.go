package httpserver_test

import (
	"testing"

	"moviecatalog/errs"
	"moviecatalog/httpserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v := httpserver.NewValidator()

	t.Run("should name fields by their json or query tag", func(t *testing.T) {
		err := v.Validate(&httpserver.ListMoviesRequest{Order: []string{"title_UP"}})

		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "validation error: order[0] failed on order", errs.ErrorMessage(err))
	})

	t.Run("should keep percent signs in field names verbatim", func(t *testing.T) {
		type discount struct {
			Rate string `json:"rate%d" validate:"required"`
		}

		err := v.Validate(&discount{})

		assert.Equal(t, "validation error: rate%d failed on required", errs.ErrorMessage(err))
	})

	t.Run("should reject blank names", func(t *testing.T) {
		err := v.Validate(&httpserver.GenreRequest{Name: "   "})

		assert.Equal(t, "validation error: name failed on notblank", errs.ErrorMessage(err))
	})

	t.Run("should accept a valid list request", func(t *testing.T) {
		assert.NoError(t, v.Validate(&httpserver.ListMoviesRequest{Order: []string{"likeCount_DESC", "id_DESC"}, Take: 10}))
	})
}
