package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, ":memory:", cfg.Store.DSN)
	require.True(t, cfg.Seed.Enabled)
	require.Contains(t, cfg.Candidates.BusinessUnits, "Oncology")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
store:
  backend: sqlite
  dsn: file:reworkdesk.db
candidates:
  business_units: [Neurology]
`), 0o600))

	t.Setenv("REWORKDESK_CONFIG_PATH", path)
	t.Setenv("REWORKDESK_SERVER_PORT", "9100")
	t.Setenv("REWORKDESK_TRANSPORT", "STDIO")
	t.Setenv("REWORKDESK_SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.Equal(t, "file:reworkdesk.db", cfg.Store.DSN)
	require.False(t, cfg.Seed.Enabled)
	require.Equal(t, []string{"Neurology"}, cfg.Candidates.BusinessUnits)
	require.Equal(t, []string{"Campaign", "Visual Aid", "Emailer", "Banner"}, cfg.Candidates.ProjectTypes)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("REWORKDESK_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Transport.Mode = "grpc"
	require.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.Store.Backend = "postgres"
	require.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.Store.Backend = BackendSQLite
	bad.Store.DSN = ""
	require.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.Server.Port = 70000
	require.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}
