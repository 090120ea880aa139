package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/movie"
	"moviecatalog/pagination"

	"gorm.io/gorm"
)

// MovieDetailModel holds the long description of a movie.
type MovieDetailModel struct {
	ID     int64  `gorm:"primaryKey"`
	Detail string `gorm:"not null"`
}

func (MovieDetailModel) TableName() string {
	return "movie_details"
}

// MovieModel represents the database model for movies
type MovieModel struct {
	ID         int64  `gorm:"primaryKey"`
	Title      string `gorm:"not null;unique"`
	LikeCount  int64  `gorm:"not null;default:0"`
	DetailID   int64
	Detail     MovieDetailModel `gorm:"foreignKey:DetailID"`
	DirectorID int64
	Director   DirectorModel `gorm:"foreignKey:DirectorID"`
	Genres     []GenreModel  `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieGenreModel is one row of the movie/genre join table.
type MovieGenreModel struct {
	MovieID int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey"`
}

func (MovieGenreModel) TableName() string {
	return "movie_genres"
}

// MovieRepository implements movie.Repository
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ListMovies returns the rows selected by q, including the look-ahead row,
// and the number of movies whose title matches.
func (r *MovieRepository) ListMovies(ctx context.Context, title string, q pagination.Query) ([]movie.Movie, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&MovieModel{}).
		Scopes(titleContains(title)).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	var models []MovieModel
	err = r.db.WithContext(ctx).
		Scopes(titleContains(title), q.Scope("movies"), withRelations).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, count, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Scopes(withRelations).Where("movies.id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// CreateMovie writes the detail, the movie and its genre links in one transaction.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detail := MovieDetailModel{Detail: m.Detail}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}

		model := MovieModel{
			Title:      m.Title,
			DetailID:   detail.ID,
			DirectorID: m.Director.ID,
			Version:    1,
		}
		if err := tx.Omit("Detail", "Director", "Genres").Create(&model).Error; err != nil {
			return mapMovieError(err)
		}
		id = model.ID

		return linkGenres(tx, id, m)
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return r.GetByID(ctx, id)
}

// UpdateMovie rewrites the movie, its detail and its genre links in one transaction.
func (r *MovieRepository) UpdateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current MovieModel
		if err := tx.Where("id = ?", m.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrMovieNotFound
			}
			return err
		}

		err := tx.Model(&MovieDetailModel{}).Where("id = ?", current.DetailID).Update("detail", m.Detail).Error
		if err != nil {
			return err
		}

		err = tx.Model(&MovieModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
			"title":       m.Title,
			"director_id": m.Director.ID,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now().UTC(),
		}).Error
		if err != nil {
			return mapMovieError(err)
		}

		if err := tx.Where("movie_id = ?", m.ID).Delete(&MovieGenreModel{}).Error; err != nil {
			return err
		}
		return linkGenres(tx, m.ID, m)
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// DeleteMovie removes the movie and its detail; genre links cascade.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current MovieModel
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrMovieNotFound
			}
			return err
		}
		if err := tx.Delete(&MovieModel{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&MovieDetailModel{}, current.DetailID).Error
	})
}

func linkGenres(tx *gorm.DB, movieID int64, m movie.Movie) error {
	if len(m.Genres) == 0 {
		return nil
	}
	links := make([]MovieGenreModel, len(m.Genres))
	for i, g := range m.Genres {
		links[i] = MovieGenreModel{MovieID: movieID, GenreID: g.ID}
	}
	return tx.Create(&links).Error
}

func titleContains(title string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if title == "" {
			return db
		}
		return db.Where("movies.title ILIKE ?", likePattern(title))
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Detail").
		Preload("Director").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.id")
		})
}

func mapMovieError(err error) error {
	if isUniqueViolation(err, "title") {
		return movie.ErrTitleTaken
	}
	return err
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:        model.ID,
		Title:     model.Title,
		Detail:    model.Detail.Detail,
		Director:  toDomainDirector(model.Director),
		Genres:    toDomainGenres(model.Genres),
		LikeCount: model.LikeCount,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Version:   model.Version,
	}
}
