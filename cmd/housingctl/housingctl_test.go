package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigLayersEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "housingctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_user: fromfile\ndb_name: housing\njwt_secret: filesecret\n"), 0o644))
	t.Setenv("DB_USER", "fromenv")

	v, err := loadConfig(path)
	require.NoError(t, err)
	cfg, err := dbConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.DBUser)
	assert.Equal(t, "housing", cfg.DBName)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "filesecret", v.GetString(keyJWTSecret))
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDBConfigRequiresUserAndName(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	chdir(t, t.TempDir())
	v, err := loadConfig("")
	require.NoError(t, err)
	_, err = dbConfig(v)
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	chdir(t, t.TempDir())

	const sub = "0f8fad5b-d9cb-469f-a165-70867728950e"
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--sub", sub, "--ttl", "1h"})
	require.NoError(t, root.Execute())

	raw := strings.TrimSpace(out.String())
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("cli-secret"), nil })
	require.NoError(t, err)
	got, err := tok.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestTokenCommandRejectsNonUUID(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	chdir(t, t.TempDir())

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token", "--sub", "alice"})
	assert.Error(t, root.Execute())
}

// chdir switches the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
