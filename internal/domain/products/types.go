package products

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusArchived Status = "Archived"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

type Product struct {
	ID              int64           `json:"id"`
	SellerProfileID int64           `json:"seller_profile_id"`
	BrandName       string          `json:"brand_name,omitempty"` // owner's brand, filled on reads
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	Status          Status          `json:"status"`
	ImageURL        string          `json:"image_url"`
	Category        string          `json:"category"`
	Location        string          `json:"location"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Filter narrows the marketplace listing. Empty fields do not filter.
type Filter struct {
	Query    string
	Location string
	Category string
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *Status
	ImageURL    *string
	Category    *string
	Location    *string
}

func (p *Product) Apply(patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
}

// PlaceholderImage is used for products created without an image.
func PlaceholderImage(name string) string {
	text := strings.Join(strings.Fields(name), "+")
	return "https://placehold.co/400x400/e2e8f0/475569?text=" + url.PathEscape(text)
}
