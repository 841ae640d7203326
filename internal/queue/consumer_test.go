package queue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAuditLine(t *testing.T) {
	line := FormatAuditLine(EntityChangedEvent{
		Entity: "product", Action: ActionDeleted, EntityID: 7, Label: "Mouse Logitech", Actor: "admin",
		OccurredAt: "2025-01-02T03:04:05Z",
	})
	assert.Equal(t, "[2025-01-02T03:04:05Z] product deleted | id=7 | label=\"Mouse Logitech\" | actor=\"admin\"\n", line)
}

func TestAppendAuditLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.log")
	require.NoError(t, AppendAuditLine(path, []byte(`{"entity":"user","action":"created","entity_id":3,"occurred_at":"t1"}`)))
	require.NoError(t, AppendAuditLine(path, []byte(`{"entity":"user","action":"updated","entity_id":3,"occurred_at":"t2"}`)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[t1] user created | id=3\n[t2] user updated | id=3\n", string(b))
}

func TestAppendAuditLineRejectsGarbage(t *testing.T) {
	err := AppendAuditLine(filepath.Join(t.TempDir(), "a.log"), []byte("{"))
	assert.Error(t, err)
}
