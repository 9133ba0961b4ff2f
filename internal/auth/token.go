package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ekurtoglu/guidance/internal/entities"
)

var (
	// ErrTokenMissing means no Authorization header was supplied.
	ErrTokenMissing = errors.New("authorization token is missing")

	// ErrTokenMalformed means the header did not have the
	// "Bearer <token>" shape.
	ErrTokenMalformed = errors.New("authorization header is malformed")

	// ErrTokenExpired means the embedded expiry has passed. Tokens live
	// 24 hours and cannot be refreshed; the client must log in again.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers a bad signature, unusable claims, or a
	// subject that no longer resolves to an active user.
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenClaims is the payload of an issued API token: the user ID as the
// subject plus issued-at and expiry.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// IssueToken signs a stateless API token for the user. Nothing is stored
// server-side; expiry and signature are the only validity checks besides
// the user still being active at verification time.
func (s *Service) IssueToken(userID uint) (string, error) {
	return s.issueTokenAt(userID, time.Now())
}

// issueTokenAt exists so tests can construct already-expired tokens.
func (s *Service) issueTokenAt(userID uint, issuedAt time.Time) (string, error) {
	expiry := s.config.TokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionSecret))
}

// VerifyToken validates a signed token string and resolves its subject
// to an existing, active user.
func (s *Service) VerifyToken(tokenString string) (*entities.User, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.config.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.GetUserByID(uint(userID))
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !user.Active {
		return nil, ErrTokenInvalid
	}

	return user, nil
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrTokenMalformed
	}

	return parts[1], nil
}
