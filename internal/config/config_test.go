package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
[server]
http_port = 8083

[database]
host = "localhost"
port = 5432
user = "clinic"
password = "clinic"
dbname = "clinic_scheduling"
sslmode = "disable"

[logs]
file = "logs/scheduling.log"
level = "info"

[directory_service]
url = "http://localhost:8081"
timeout = 5

[notify_service]
url = "http://localhost:8082"
timeout = 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig+"\n[scheduling]\ntx_retry_attempts = 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "clinic_scheduling", cfg.Database.DBName)
	assert.Equal(t, 5, cfg.Scheduling.TxRetryAttempts)
	assert.Equal(t,
		"host=localhost port=5432 user=clinic password=clinic dbname=clinic_scheduling sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_SchedulingDefaultsToZero(t *testing.T) {
	// Omitting the block keeps the transaction manager's built-in budget.
	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Scheduling.TxRetryAttempts)
}

func TestLoad_NegativeRetryAttemptsRejected(t *testing.T) {
	_, err := Load(writeConfig(t, baseConfig+"\n[scheduling]\ntx_retry_attempts = -1\n"))
	assert.Error(t, err)
}

func TestLoad_MissingDatabaseHost(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
http_port = 8083

[directory_service]
url = "http://localhost:8081"
`))
	assert.Error(t, err)
}
