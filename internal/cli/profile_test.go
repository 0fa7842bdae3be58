package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveProfile_FirstBecomesActive(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p, err := SaveProfile("Prod EU", "https://api.backupdesk.example/")
	require.NoError(t, err)
	assert.Equal(t, "prod-eu", p.Name)
	assert.Equal(t, "https://api.backupdesk.example", p.BackendURL)

	active, err := GetActive()
	require.NoError(t, err)
	assert.Equal(t, "prod-eu", active)
}

func TestSaveProfile_Validation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := SaveProfile("prod", "")
	require.Error(t, err)

	_, err = SaveProfile("---", "http://localhost:8000")
	require.Error(t, err)
}

func TestListProfiles_Empty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	profiles, err := ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileLifecycle(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := SaveProfile("prod", "http://prod.local:8000")
	require.NoError(t, err)
	_, err = SaveProfile("staging", "http://staging.local:8000")
	require.NoError(t, err)

	profiles, err := ListProfiles()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	require.NoError(t, SetActive("staging"))

	p, err := ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "staging", p.Name)
	assert.Equal(t, "http://staging.local:8000", p.BackendURL)

	// Deleting the active profile clears the selection.
	require.NoError(t, DeleteProfile("staging"))
	active, err := GetActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	// One profile left, so it resolves without an explicit selection.
	p, err = ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "prod", p.Name)
}

func TestSetActive_UnknownProfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := SetActive("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestActiveProfile_NoneConfigured(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := ActiveProfile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profiles configured")
}

func TestActiveProfile_Ambiguous(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := SaveProfile("a", "http://a.local")
	require.NoError(t, err)
	_, err = SaveProfile("b", "http://b.local")
	require.NoError(t, err)
	_, err = SaveProfile("c", "http://c.local")
	require.NoError(t, err)

	// Deleting the auto-activated first profile leaves two candidates
	// and no selection.
	require.NoError(t, DeleteProfile("a"))

	_, err = ActiveProfile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple profiles")
}
