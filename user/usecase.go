package user

import (
	"context"
	"errors"
	"strings"

	"moviecatalog/pagination"
)

type Service interface {
	CreateUser(ctx context.Context, u User) (User, error)
	ListUsers(ctx context.Context, p pagination.Page) ([]User, int64, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateInput) (User, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	ListUsers(ctx context.Context, p pagination.Page) ([]User, int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Email    *string
	Password *string
	Role     *Role
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
	}
}

func (uc *Usecase) CreateUser(ctx context.Context, u User) (User, error) {
	u.Email = strings.TrimSpace(u.Email)
	if err := u.Validate(); err != nil {
		return User{}, err
	}

	if _, err := uc.r.GetByEmail(ctx, u.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hashed, err := uc.hasher.Hash(u.Password)
	if err != nil {
		return User{}, err
	}
	u.Password = ""
	u.PasswordHash = hashed
	return uc.r.CreateUser(ctx, u)
}

func (uc *Usecase) ListUsers(ctx context.Context, p pagination.Page) ([]User, int64, error) {
	return uc.r.ListUsers(ctx, p.Normalize())
}

func (uc *Usecase) GetUser(ctx context.Context, id int64) (User, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) GetUserByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return User{}, err
	}
	return uc.r.GetByEmail(ctx, email)
}

func (uc *Usecase) UpdateUser(ctx context.Context, id int64, in UpdateInput) (User, error) {
	u, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return User{}, err
		}
		if email != u.Email {
			if _, err := uc.r.GetByEmail(ctx, email); err == nil {
				return User{}, ErrEmailTaken
			} else if !errors.Is(err, ErrUserNotFound) {
				return User{}, err
			}
		}
		u.Email = email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return User{}, ErrInvalidRole
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if err := ValidatePassword(*in.Password); err != nil {
			return User{}, err
		}
		hashed, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hashed
	}

	return uc.r.UpdateUser(ctx, u)
}

func (uc *Usecase) DeleteUser(ctx context.Context, id int64) (int64, error) {
	if _, err := uc.r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	if err := uc.r.DeleteUser(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
