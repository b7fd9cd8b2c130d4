package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/0001_init.sql", names[0])

	body, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "revision")
	assert.Contains(t, string(body), "seller_profiles_account_id_key")
}
