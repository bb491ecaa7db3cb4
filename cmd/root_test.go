// file: cmd/root_test.go
// version: 2.0.0
// guid: 8e9f0a1b-2c3d-4e5f-6a7b-8c9d0e1f2a3b

package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

func TestRootHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	require.NoError(t, rootCmd.Execute())

	help := out.String()
	assert.Contains(t, help, "serve")
	assert.Contains(t, help, "import")
	assert.Contains(t, help, "discogs-sync")
	assert.Contains(t, help, "1001")
	assert.Contains(t, help, "diagnostics")
}

func TestParseModeFlag(t *testing.T) {
	newCmd := func(flagValue string) *cobra.Command {
		c := &cobra.Command{Use: "test"}
		c.Flags().String("mode", "", "")
		if flagValue != "" {
			require.NoError(t, c.Flags().Set("mode", flagValue))
		}
		return c
	}

	prev := config.AppConfig.Import.Mode
	t.Cleanup(func() { config.AppConfig.Import.Mode = prev })
	config.AppConfig.Import.Mode = ""

	mode, err := parseModeFlag(newCmd(""))
	require.NoError(t, err)
	assert.Equal(t, models.UpdateAll, mode)

	mode, err = parseModeFlag(newCmd("update_missing_only"))
	require.NoError(t, err)
	assert.Equal(t, models.UpdateMissingOnly, mode)

	config.AppConfig.Import.Mode = "update_missing_only"
	mode, err = parseModeFlag(newCmd(""))
	require.NoError(t, err)
	assert.Equal(t, models.UpdateMissingOnly, mode)

	_, err = parseModeFlag(newCmd("sideways"))
	assert.Error(t, err)
}
