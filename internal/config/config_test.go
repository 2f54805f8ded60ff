package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DUMMY_DATA_API_URL", "http://localhost:3000/graphql")
	t.Setenv("DUMMY_DATA_SHOP_ID", "cmVhY3Rpb24vc2hvcDpKOEJocTN1VHRkZ3daeDNyeg==")
	t.Setenv("DUMMY_DATA_TOAST_TIMEOUT", "4s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/graphql", cfg.API.BaseUrl)
	assert.Equal(t, defaultAPITimeout, cfg.API.Timeout)
	assert.Equal(t, 4*time.Second, cfg.Screen.ToastTimeout)
	assert.Equal(t, JournalNone, cfg.Journal.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, defaultTelegramApiUrl, cfg.TelegramBot.BaseUrl)
}

func TestLoad_MissingAPIURL(t *testing.T) {
	t.Setenv("DUMMY_DATA_API_URL", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUMMY_DATA_API_URL")
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dummy-data.yaml")
	body := `
api:
  base_url: http://yaml-host/graphql
  timeout: 3s
screen:
  single_flight: true
journal:
  driver: SQLite
  dsn: file:journal.db
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("DUMMY_DATA_API_URL", "http://env-host/graphql")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env-host/graphql", cfg.API.BaseUrl)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Screen.SingleFlight)
	assert.Equal(t, JournalSqlite, cfg.Journal.Driver)
	assert.Equal(t, "file:journal.db", cfg.Journal.DSN)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "duration", key: "DUMMY_DATA_API_TIMEOUT", val: "soon"},
		{name: "bool", key: "DUMMY_DATA_SINGLE_FLIGHT", val: "maybe"},
		{name: "int", key: "MYSQL_PORT", val: "port"},
		{name: "negative toast", key: "DUMMY_DATA_TOAST_TIMEOUT", val: "-1s"},
		{name: "journal driver", key: "DUMMY_DATA_JOURNAL_DRIVER", val: "postgres"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DUMMY_DATA_API_URL", "http://localhost/graphql")
			t.Setenv(tc.key, tc.val)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestValidate_MysqlJournalNeedsConnection(t *testing.T) {
	cfg := &Config{
		API:     APIConfig{BaseUrl: "http://localhost/graphql"},
		Journal: JournalConfig{Driver: JournalMysql},
	}
	require.Error(t, cfg.Validate())

	cfg.Mysql = MysqlConfig{Host: "db", Username: "root", Database: "reaction"}
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("DUMMY_DATA_API_URL", "http://localhost/graphql")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_UnreadableDotEnvIsWarning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))
	t.Chdir(dir)
	t.Setenv("DUMMY_DATA_API_URL", "http://localhost:3000/graphql")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "could not load .env file")
}
