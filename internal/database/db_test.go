package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/backoffice/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{DBUser: "app", DBPass: "s3cret", DBHost: "db", DBPort: "3306", DBName: "backoffice"}
	dsn := DSN(cfg)
	assert.Contains(t, dsn, "app:s3cret@tcp(db:3306)/backoffice?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")

	cfg.DBPass = ""
	assert.Contains(t, DSN(cfg), "app@tcp(db:3306)/backoffice?")
}
