// Package auth issues and verifies the signed credentials carried by the
// `token` cookie or an Authorization bearer header.
package auth

import (
	"time"

	"bazaar/internal/domain/accounts"
)

const (
	CookieName = "token"
	TokenTTL   = 24 * time.Hour
	Issuer     = "bazaar"
)

// Claims is the verified identity of a caller.
type Claims struct {
	SubjectID int64
	Role      accounts.Role
}

type Authenticator interface {
	Issue(accountID int64, role accounts.Role) (token string, expiresAt time.Time, err error)
	Verify(token string) (*Claims, error)
}
