package auth

import (
	"encoding/base64"
	"strings"
)

// ParseBasicToken splits "Basic base64(email:password)" into its parts.
func ParseBasicToken(raw string) (email, password string, err error) {
	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", "", ErrInvalidBasicToken
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", ErrInvalidBasicToken
	}

	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok || email == "" || password == "" {
		return "", "", ErrInvalidBasicToken
	}
	return email, password, nil
}
