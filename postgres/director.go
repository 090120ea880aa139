package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/director"
	"moviecatalog/pagination"

	"gorm.io/gorm"
)

// DirectorModel represents the database model for directors
type DirectorModel struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	DOB         time.Time `gorm:"column:dob;type:date;not null"`
	Nationality string    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (DirectorModel) TableName() string {
	return "directors"
}

// DirectorRepository implements director.Repository
type DirectorRepository struct {
	db *gorm.DB
}

func NewDirectorRepository(db *gorm.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

func (r *DirectorRepository) CreateDirector(ctx context.Context, d director.Director) (director.Director, error) {
	model := toModelDirector(d)
	model.Version = 1
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return director.Director{}, err
	}
	return toDomainDirector(model), nil
}

func (r *DirectorRepository) ListDirectors(ctx context.Context, p pagination.Page) ([]director.Director, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&DirectorModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []DirectorModel
	err := r.db.WithContext(ctx).Scopes(p.Scope()).Order("id").Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	directors := make([]director.Director, len(models))
	for i, model := range models {
		directors[i] = toDomainDirector(model)
	}
	return directors, total, nil
}

func (r *DirectorRepository) GetByID(ctx context.Context, id int64) (director.Director, error) {
	var model DirectorModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return director.Director{}, director.ErrDirectorNotFound
		}
		return director.Director{}, err
	}
	return toDomainDirector(model), nil
}

func (r *DirectorRepository) UpdateDirector(ctx context.Context, d director.Director) (director.Director, error) {
	result := r.db.WithContext(ctx).Model(&DirectorModel{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"name":        d.Name,
		"dob":         d.DOB,
		"nationality": d.Nationality,
		"version":     gorm.Expr("version + 1"),
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return director.Director{}, result.Error
	}
	if result.RowsAffected == 0 {
		return director.Director{}, director.ErrDirectorNotFound
	}
	return r.GetByID(ctx, d.ID)
}

func (r *DirectorRepository) DeleteDirector(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DirectorModel{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return director.ErrDirectorInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return director.ErrDirectorNotFound
	}
	return nil
}

func toDomainDirector(model DirectorModel) director.Director {
	return director.Director{
		ID:          model.ID,
		Name:        model.Name,
		DOB:         model.DOB,
		Nationality: model.Nationality,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		Version:     model.Version,
	}
}

func toModelDirector(d director.Director) DirectorModel {
	return DirectorModel{
		ID:          d.ID,
		Name:        d.Name,
		DOB:         d.DOB,
		Nationality: d.Nationality,
		Version:     d.Version,
	}
}
