package profiles

import "time"

type SellerProfile struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	BrandName       string    `json:"brand_name"`
	BusinessAddress string    `json:"business_address"`
	GSTNumber       *string   `json:"gst_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ShopkeeperProfile struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"account_id"`
	ShopName      string    `json:"shop_name"`
	ShopAddress   string    `json:"shop_address"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}
