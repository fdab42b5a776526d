package root_test

import (
	"testing"

	"calstate/alma-voucher/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRegistersFlags(t *testing.T) {
	root.Init()

	campus := root.Cmd.PersistentFlags().Lookup("campus")
	require.NotNil(t, campus)
	assert.Equal(t, "all", campus.DefValue)

	date := root.Cmd.PersistentFlags().Lookup("date")
	require.NotNil(t, date)
	assert.Empty(t, date.DefValue)

	configDir := root.Cmd.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, configDir)
	assert.Equal(t, "campuses", configDir.DefValue)
}

func TestCampusesSingle(t *testing.T) {
	original := root.SharedFlags.Campus
	defer func() { root.SharedFlags.Campus = original }()

	root.SharedFlags.Campus = "chico"
	campuses, err := root.Campuses()
	require.NoError(t, err)
	assert.Equal(t, []string{"chico"}, campuses)
}
