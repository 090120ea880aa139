package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/pagination"
	"moviecatalog/user"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"not null;unique"`
	PasswordHash string `gorm:"not null"`
	Role         int    `gorm:"not null;default:2"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	model.Version = 1
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "email") {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

func (r *UserRepository) ListUsers(ctx context.Context, p pagination.Page) ([]user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).Scopes(p.Scope()).Order("id").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = toDomainUser(model)
	}
	return users, total, nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          int(u.Role),
		"version":       gorm.Expr("version + 1"),
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "email") {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         user.Role(model.Role),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		Version:      model.Version,
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         int(u.Role),
		Version:      u.Version,
	}
}
