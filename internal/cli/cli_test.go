package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWeekCmd(t *testing.T) {
	out, err := run(t, "week", "--today", "2025-04-23", "--anchor", "2025-04-23")

	require.NoError(t, err)
	assert.Contains(t, out, "avril 2025 (2025-04-21 → 2025-04-27)")
	assert.Contains(t, out, "Lun 21  past")
	assert.Contains(t, out, "Mer 23  bookable")
	assert.Contains(t, out, "Dim 27  weekend")
	assert.NotContains(t, out, "warning")
}

func TestWeekCmd_UncoveredYear(t *testing.T) {
	out, err := run(t, "week", "--today", "2025-04-23", "--anchor", "2026-01-05")

	require.NoError(t, err)
	assert.Contains(t, out, "warning: no holiday calendar for [2026]")
}

func TestCheckCmd(t *testing.T) {
	out, err := run(t, "check", "--today", "2025-04-23", "2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01: not bookable (holiday)\n", out)

	out, err = run(t, "check", "--today", "2025-10-13", "2025-10-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-14: bookable (mardi 14 octobre 2025)\n", out)

	_, err = run(t, "check", "14/10/2025")
	assert.Error(t, err)
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "validate",
		"--prenom", "Camille", "--nom", "Durand", "--email", "camille@example.fr",
		"--telephone", "06 12 34 56 78", "--adresse", "12 rue des Lilas",
		"--ville", "Paris", "--code_postal", "75011")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = run(t, "validate", "--prenom", "Camille", "--nom", "Durand", "--email", "camille@",
		"--telephone", "0612345678", "--adresse", "1 rue A", "--ville", "Paris", "--code_postal", "7500")
	assert.EqualError(t, err, "2 invalid field(s)")
	assert.Equal(t, "email: Format d'email invalide\ncode_postal: Le code postal doit contenir 5 chiffres\n", out)
}

func TestPacksCmd(t *testing.T) {
	out, err := run(t, "packs")

	require.NoError(t, err)
	assert.Contains(t, out, "* rongeur")
	assert.Contains(t, out, "  guepes-frelons")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("booking:\n  default_pack: guepes-frelons\n"), 0o600))

	out, err := run(t, "--config", path, "packs")

	require.NoError(t, err)
	assert.Contains(t, out, "* guepes-frelons")
}
