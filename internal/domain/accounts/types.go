package accounts

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleSeller     Role = "seller"
	RoleShopkeeper Role = "shopkeeper"
)

func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleShopkeeper
}

type Account struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  password  `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is what the auth endpoints hand back to clients.
type Summary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (a *Account) Summary() Summary {
	return Summary{ID: a.ID, Email: a.Email, Role: a.Role}
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

var (
	unknownHashOnce sync.Once
	unknownHash     []byte
)

func dummyHash() []byte {
	unknownHashOnce.Do(func() {
		unknownHash, _ = bcrypt.GenerateFromPassword([]byte("bazaar-unknown-account"), bcrypt.DefaultCost)
	})
	return unknownHash
}

// CompareUnknown spends the same bcrypt work as Compare for an email with no
// account, so login latency does not reveal which emails are registered. It
// always fails.
func CompareUnknown(text string) error {
	if err := bcrypt.CompareHashAndPassword(dummyHash(), []byte(text)); err != nil {
		return err
	}
	return bcrypt.ErrMismatchedHashAndPassword
}
