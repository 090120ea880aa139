package auth

import (
	"context"
	"errors"
	"time"

	"moviecatalog/errs"
	"moviecatalog/user"
)

var (
	ErrInvalidBasicToken  = errs.Errorf(errs.EINVALID, "auth: malformed basic token")
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid email or password")
	ErrAccountLocked      = errs.Errorf(errs.EFORBIDDEN, "auth: account temporarily locked")
)

type Service interface {
	Register(ctx context.Context, basicToken string) (user.User, error)
	Login(ctx context.Context, basicToken string) (TokenPair, error)
	RotateAccessToken(ctx context.Context, userID int64) (string, error)
}

type UserService interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id int64) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (LoginAttempt, error)
	Save(ctx context.Context, email string, attempt LoginAttempt) error
	Reset(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateAccessToken(u user.User) (string, error)
	GenerateRefreshToken(u user.User) (string, error)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Usecase struct {
	users          UserService
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
}

func NewUsecase(
	users UserService,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
) *Usecase {
	return &Usecase{
		users:          users,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		maxRetries:     5,
		jailDuration:   15 * time.Minute,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Register creates a regular user from the credentials in a Basic header.
func (uc *Usecase) Register(ctx context.Context, basicToken string) (user.User, error) {
	email, password, err := ParseBasicToken(basicToken)
	if err != nil {
		return user.User{}, err
	}
	return uc.users.CreateUser(ctx, user.User{
		Email:    email,
		Password: password,
		Role:     user.RoleUser,
	})
}

// Login checks the credentials in a Basic header and issues a token pair.
// Repeated failures lock the email for jailDuration.
func (uc *Usecase) Login(ctx context.Context, basicToken string) (TokenPair, error) {
	email, password, err := ParseBasicToken(basicToken)
	if err != nil {
		return TokenPair{}, err
	}

	attempt, err := uc.attemptsRepo.Get(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return TokenPair{}, ErrAccountLocked
		}
		attempt = LoginAttempt{}
	}

	u, err := uc.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrInvalidEmail) {
		return TokenPair{}, uc.fail(ctx, email, attempt)
	}
	if err != nil {
		return TokenPair{}, err
	}
	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		return TokenPair{}, uc.fail(ctx, email, attempt)
	}

	if err := uc.attemptsRepo.Reset(ctx, email); err != nil {
		return TokenPair{}, err
	}

	accessToken, err := uc.tokenProvider.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RotateAccessToken issues a fresh access token for the subject of a
// verified refresh token. The role is re-read so demotions take effect.
func (uc *Usecase) RotateAccessToken(ctx context.Context, userID int64) (string, error) {
	u, err := uc.users.GetUser(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	return uc.tokenProvider.GenerateAccessToken(u)
}

func (uc *Usecase) fail(ctx context.Context, email string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
	}
	if err := uc.attemptsRepo.Save(ctx, email, attempt); err != nil {
		return err
	}
	return ErrInvalidCredentials
}
