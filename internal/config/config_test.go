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
	path := filepath.Join(t.TempDir(), "eventdesk_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath_Valid(t *testing.T) {
	path := writeConfig(t, `
rosterSheetID: sheet-123
rosterTab: Roster
gmailUserID: me@example.org
followUpRRule: FREQ=WEEKLY
followUpStaleDays: 10
apiListenAddr: ":9090"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.RosterSheetID)
	assert.Equal(t, 10, cfg.StaleDays())
	assert.Equal(t, ":9090", cfg.ListenAddr())
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	path := writeConfig(t, `
rosterTab: Roster
gmailUserID: me@example.org
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidFollowUpRule(t *testing.T) {
	path := writeConfig(t, `
rosterSheetID: sheet-123
rosterTab: Roster
gmailUserID: me@example.org
followUpRRule: "NOT-A-RULE"
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "followUpRRule")
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 7, cfg.StaleDays())
	assert.Equal(t, ":8080", cfg.ListenAddr())
}
