package orders

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHelpers(t *testing.T) {
	o := &Order{Items: []Item{
		{ProductID: 3, Quantity: 2, PriceAtPurchase: decimal.RequireFromString("10.50")},
		{ProductID: 5, Quantity: 1, PriceAtPurchase: decimal.RequireFromString("4.00")},
		{ProductID: 3, Quantity: 1, PriceAtPurchase: decimal.RequireFromString("10.50")},
	}}

	assert.Equal(t, []int64{3, 5}, o.ProductIDs())
	assert.True(t, decimal.RequireFromString("35.50").Equal(o.ItemsTotal()))
}

func TestNumberGenerator(t *testing.T) {
	g := NewNumberGenerator("secret")
	re := regexp.MustCompile(`^BZR-[A-Z2-7]{4}-[0-9A-F]{4}$`)

	a, b := g.Generate(1), g.Generate(1)
	assert.Regexp(t, re, a)
	assert.Regexp(t, re, b)
	assert.NotEqual(t, a, b)
}

func TestReferenceEncoder(t *testing.T) {
	enc, err := NewReferenceEncoder("salt")
	require.NoError(t, err)

	ref := enc.Encode(42)
	assert.GreaterOrEqual(t, len(ref), 6)
	assert.Regexp(t, `^[`+referenceAlphabet+`]+$`, ref)

	id, err := enc.Decode(ref)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	other, err := NewReferenceEncoder("other-salt")
	require.NoError(t, err)
	assert.NotEqual(t, ref, other.Encode(42))
}
