package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/genre"
	"moviecatalog/pagination"

	"gorm.io/gorm"
)

// GenreModel represents the database model for genres
type GenreModel struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (GenreModel) TableName() string {
	return "genres"
}

// GenreRepository implements genre.Repository and movie.GenreFinder
type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) CreateGenre(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	model := GenreModel{Name: g.Name, Version: 1}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "name") {
			return genre.Genre{}, genre.ErrGenreExists
		}
		return genre.Genre{}, err
	}
	return toDomainGenre(model), nil
}

func (r *GenreRepository) ListGenres(ctx context.Context, p pagination.Page) ([]genre.Genre, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&GenreModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []GenreModel
	if err := r.db.WithContext(ctx).Scopes(p.Scope()).Order("id").Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toDomainGenres(models), total, nil
}

func (r *GenreRepository) GetByID(ctx context.Context, id int64) (genre.Genre, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GenreRepository) GetByName(ctx context.Context, name string) (genre.Genre, error) {
	return r.first(ctx, "name = ?", name)
}

// FindByIDs returns the genres that exist among ids, ordered by id.
func (r *GenreRepository) FindByIDs(ctx context.Context, ids []int64) ([]genre.Genre, error) {
	if len(ids) == 0 {
		return []genre.Genre{}, nil
	}
	var models []GenreModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainGenres(models), nil
}

func (r *GenreRepository) UpdateGenre(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	result := r.db.WithContext(ctx).Model(&GenreModel{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"name":       g.Name,
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "name") {
			return genre.Genre{}, genre.ErrGenreExists
		}
		return genre.Genre{}, result.Error
	}
	if result.RowsAffected == 0 {
		return genre.Genre{}, genre.ErrGenreNotFound
	}
	return r.GetByID(ctx, g.ID)
}

func (r *GenreRepository) DeleteGenre(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GenreModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

func (r *GenreRepository) first(ctx context.Context, query string, arg interface{}) (genre.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return genre.Genre{}, genre.ErrGenreNotFound
		}
		return genre.Genre{}, err
	}
	return toDomainGenre(model), nil
}

func toDomainGenre(model GenreModel) genre.Genre {
	return genre.Genre{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Version:   model.Version,
	}
}

func toDomainGenres(models []GenreModel) []genre.Genre {
	genres := make([]genre.Genre, len(models))
	for i, model := range models {
		genres[i] = toDomainGenre(model)
	}
	return genres
}
