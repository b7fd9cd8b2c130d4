package inbox

import (
	"fmt"
	"time"

	"bazaar/internal/apperr"
)

// Category groups notifications by who they are for. Sellers read new_order,
// shopkeepers read order_update.
type Category string

const (
	CategoryNewOrder    Category = "new_order"
	CategoryOrderUpdate Category = "order_update"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryNewOrder, CategoryOrderUpdate:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown notification category %q", apperr.ErrInvalidArgument, s)
}

type Notification struct {
	ID                 int64     `json:"id"`
	RecipientAccountID int64     `json:"recipient_account_id"`
	Category           Category  `json:"category"`
	Message            string    `json:"message"`
	Link               string    `json:"link"`
	IsRead             bool      `json:"is_read"`
	CreatedAt          time.Time `json:"created_at"`
}
