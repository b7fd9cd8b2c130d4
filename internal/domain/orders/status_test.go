package orders

import (
	"testing"

	"bazaar/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"shipped", "SHIPPED", " Shipped "} {
		st, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, StatusShipped, st)
	}

	_, err := ParseStatus("Returned")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestCheckTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusShipped}:   true,
		{StatusPending, StatusCancelled}: true,
		{StatusShipped, StatusDelivered}: true,
		{StatusShipped, StatusCancelled}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := CheckTransition(from, to)
			if allowed[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusShipped.Terminal())
}
