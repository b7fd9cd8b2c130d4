package notifications

import "fmt"

type OrderEvent string

const (
	OrderPlaced        OrderEvent = "Placed"
	OrderStatusChanged OrderEvent = "StatusChanged"
)

const (
	CustomerOrdersLink = "/dashboard/shopkeeper/orders"
	SellerOrdersLink   = "/dashboard/seller/orders"
)

// OrderMessage renders the text and link of an order notification. ref is the
// short order reference and status the new status for OrderStatusChanged.
func OrderMessage(event OrderEvent, ref, status string) (message, link string) {
	switch event {
	case OrderPlaced:
		return fmt.Sprintf("New order (#%s) received.", ref), SellerOrdersLink
	case OrderStatusChanged:
		return fmt.Sprintf("Your order (#%s) changed to %s.", ref, status), CustomerOrdersLink
	default:
		return fmt.Sprintf("Your order (#%s) has an update.", ref), CustomerOrdersLink
	}
}
