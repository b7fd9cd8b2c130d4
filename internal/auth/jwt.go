package auth

import (
	"fmt"
	"strconv"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/accounts"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenClaims struct {
	Role accounts.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTAuthenticator struct {
	secret string
	iss    string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTAuthenticator(secret, iss string, ttl time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, iss: iss, ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for the account. Every token gets its own jti.
func (a *JWTAuthenticator) Issue(accountID int64, role accounts.Role) (string, time.Time, error) {
	if a.secret == "" {
		return "", time.Time{}, fmt.Errorf("%w: token secret is not set", apperr.ErrMisconfigured)
	}

	now := a.now()
	exp := now.Add(a.ttl)
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			Issuer:    a.iss,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (a *JWTAuthenticator) Verify(token string) (*Claims, error) {
	if a.secret == "" {
		return nil, fmt.Errorf("%w: token secret is not set", apperr.ErrMisconfigured)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: missing credential", apperr.ErrUnauthenticated)
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject", apperr.ErrUnauthenticated)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", apperr.ErrUnauthenticated)
	}

	return &Claims{SubjectID: id, Role: claims.Role}, nil
}
