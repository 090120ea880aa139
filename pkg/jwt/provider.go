package jwt

import (
	"errors"
	"strconv"
	"time"

	"moviecatalog/errs"
	"moviecatalog/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid token")
	ErrTokenExpired = errs.Errorf(errs.EUNAUTHORIZED, "token expired")
	ErrTokenType    = errs.Errorf(errs.EUNAUTHORIZED, "unexpected token type")
)

// Claims is the token body: sub carries the user id.
type Claims struct {
	Role user.Role `json:"role"`
	Type string    `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// JWTProvider signs access and refresh tokens with separate secrets.
type JWTProvider struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewJWTProvider(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(u user.User) (string, error) {
	return p.sign(u, TypeAccess)
}

func (p *JWTProvider) GenerateRefreshToken(u user.User) (string, error) {
	return p.sign(u, TypeRefresh)
}

func (p *JWTProvider) sign(u user.User, tokenType string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: u.Role,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl(tokenType))),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret(tokenType))
}

// Parse verifies raw with the secret that belongs to its declared type.
func (p *JWTProvider) Parse(raw string) (*Claims, error) {
	unverified := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(raw, unverified); err != nil {
		return nil, ErrInvalidToken
	}
	if unverified.Type != TypeAccess && unverified.Type != TypeRefresh {
		return nil, ErrTokenType
	}
	return p.parse(raw, unverified.Type)
}

func (p *JWTProvider) parse(raw, tokenType string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, p.KeyFunc(tokenType), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType {
		return nil, ErrTokenType
	}
	return claims, nil
}

// KeyFunc returns the verification key lookup for tokens of tokenType.
func (p *JWTProvider) KeyFunc(tokenType string) jwt.Keyfunc {
	return func(*jwt.Token) (interface{}, error) {
		return p.secret(tokenType), nil
	}
}

func (p *JWTProvider) secret(tokenType string) []byte {
	if tokenType == TypeRefresh {
		return []byte(p.RefreshSecret)
	}
	return []byte(p.AccessSecret)
}

func (p *JWTProvider) ttl(tokenType string) time.Duration {
	if tokenType == TypeRefresh {
		return p.RefreshTTL
	}
	return p.AccessTTL
}
