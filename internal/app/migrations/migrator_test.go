package migrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models"
)

// The status column defaults must use the same casing as the model
// constants, otherwise a row created without an explicit status would never
// match comparisons like status = 'Open'.
func TestSchemaStatusDefaultsMatchModelConstants(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	sql := string(schema)

	assert.Contains(t, sql, "DEFAULT '"+string(models.JobOpen)+"'")
	assert.Contains(t, sql, "DEFAULT '"+string(models.ApplicationPending)+"'")
	assert.Contains(t, sql, "DEFAULT '"+string(models.OrderPending)+"'")
	assert.Contains(t, sql, "DEFAULT '"+string(models.SubmissionSubmitted)+"'")
	assert.Contains(t, sql, "DEFAULT '"+string(models.LostItemLost)+"'")

	assert.NotContains(t, sql, "DEFAULT 'open'")

	// Application statuses are title-cased; only the job_applications table
	// uses them.
	start := strings.Index(sql, "CREATE TABLE IF NOT EXISTS job_applications")
	require.GreaterOrEqual(t, start, 0)
	block := sql[start:]
	block = block[:strings.Index(block, ");")]
	assert.NotContains(t, block, "'pending'")
}
