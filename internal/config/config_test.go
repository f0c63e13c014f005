package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  user: quill
  name: quill
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Server.Env)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  user: quill
  password: from-yaml
  name: quill
jwt:
  secret: from-yaml
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{
		Host: "db.local", Port: 3306, User: "quill", Password: "pw",
		Name: "quilldb", Params: "parseTime=True",
	}

	assert.Equal(t, "quill:pw@tcp(db.local:3306)/quilldb?parseTime=True", cfg.DSN())
}
