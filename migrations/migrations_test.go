package migrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every up migration needs a matching down migration or golang-migrate
// cannot roll back past it.
func TestMigrationsComeInPairs(t *testing.T) {
	ups, err := filepath.Glob("*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}

// Both tables enforce distinct base and quote currencies at the schema
// level, so a write that bypasses the service layer still cannot store a
// self-referential pair.
func TestSchemaRejectsSelfReferentialPairs(t *testing.T) {
	for _, file := range []string{
		"000001_create_exchange_rates.up.sql",
		"000002_create_pair_sources.up.sql",
	} {
		sql, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(sql), "CHECK (base_code <> quote_code)", file)
	}
}
