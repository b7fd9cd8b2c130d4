package orders

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NumberGenerator mints the human-facing order_number stored on each order.
type NumberGenerator struct {
	secret string
}

func NewNumberGenerator(secret string) *NumberGenerator {
	return &NumberGenerator{secret: secret}
}

func (g *NumberGenerator) Generate(customerID int64) string {
	nonce := uuid.NewString()

	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(fmt.Sprintf("customer:%d|nonce:%s", customerID, nonce)))

	sum := mac.Sum(nil)
	tag := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum)

	return fmt.Sprintf(
		"BZR-%s-%s",
		strings.ToUpper(tag[:4]),
		strings.ToUpper(uuid.NewString()[:4]),
	)
}
