package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyPatchOnlyTouchesSetFields(t *testing.T) {
	p := &Product{
		Name:     "Basmati rice",
		Price:    decimal.RequireFromString("54.50"),
		Stock:    100,
		Status:   StatusActive,
		Category: "grains",
		Location: "Pune",
	}

	stock := 80
	archived := StatusArchived
	p.Apply(Patch{Stock: &stock, Status: &archived})

	assert.Equal(t, "Basmati rice", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("54.50")))
	assert.Equal(t, 80, p.Stock)
	assert.Equal(t, StatusArchived, p.Status)
	assert.Equal(t, "Pune", p.Location)
}

func TestPlaceholderImage(t *testing.T) {
	assert.Equal(t,
		"https://placehold.co/400x400/e2e8f0/475569?text=Raw+Cotton+Bales",
		PlaceholderImage("Raw  Cotton Bales"))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusArchived.Valid())
	assert.False(t, Status("Deleted").Valid())
}
