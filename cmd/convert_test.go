package cmd

import (
	"testing"

	"github.com/gnames/esdveg/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetConvertCmd_Flags verifies flags of the convert command.
func TestGetConvertCmd_Flags(t *testing.T) {
	cmd := getConvertCmd()

	tests := []struct {
		name, short, def string
	}{
		{"plants", "p", ""},
		{"db", "d", ""},
		{"audit", "a", "false"},
		{"export", "e", "false"},
		{"collapse", "c", "false"},
		{"jobs", "j", "0"},
	}

	for _, v := range tests {
		f := cmd.Flags().Lookup(v.name)
		require.NotNil(t, f, v.name)
		assert.Equal(t, v.short, f.Shorthand, v.name)
		assert.Equal(t, v.def, f.DefValue, v.name)
	}
}

// TestGetConvertCmd_Args verifies that input and output files are
// required.
func TestGetConvertCmd_Args(t *testing.T) {
	cmd := getConvertCmd()
	require.NotNil(t, cmd.Args)

	assert.Error(t, cmd.Args(cmd, []string{"veg.csv"}))
	assert.NoError(t, cmd.Args(cmd, []string{"veg.csv", "out.json"}))
}

// TestConvertOpts verifies that only explicitly set flags change
// configuration.
func TestConvertOpts(t *testing.T) {
	t.Run("no flags", func(t *testing.T) {
		cmd := getConvertCmd()
		require.NoError(t, cmd.ParseFlags([]string{}))
		assert.Empty(t, convertOpts(cmd))
	})

	t.Run("all flags", func(t *testing.T) {
		cmd := getConvertCmd()
		err := cmd.ParseFlags([]string{
			"-p", "plants.txt", "-d", "debug.sqlite",
			"-a", "-e", "-c", "-j", "3",
		})
		require.NoError(t, err)

		c := config.New()
		c.Update(convertOpts(cmd))
		assert.Equal(t, "plants.txt", c.Plants.Source)
		assert.Equal(t, "debug.sqlite", c.DebugDB)
		assert.True(t, c.WithAudit)
		assert.True(t, c.WithExport)
		assert.True(t, c.Assembly.CollapseEmpty)
		assert.Equal(t, 3, c.JobsNumber)
	})

	t.Run("collapse off overrides config", func(t *testing.T) {
		cmd := getConvertCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--collapse=false"}))

		c := config.New()
		c.Update([]config.Option{config.OptCollapseEmpty(true)})
		c.Update(convertOpts(cmd))
		assert.False(t, c.Assembly.CollapseEmpty)
	})
}

// TestGetPlantsCmd_Flags verifies the plants command.
func TestGetPlantsCmd_Flags(t *testing.T) {
	cmd := getPlantsCmd()
	assert.Equal(t, "plants", cmd.Use)

	f := cmd.Flags().Lookup("plants")
	require.NotNil(t, f)
	assert.Equal(t, "p", f.Shorthand)

	require.NoError(t, cmd.ParseFlags([]string{"-p", "https://example.org/t"}))
	c := config.New()
	c.Update(plantsSourceOpt(cmd))
	assert.Equal(t, "https://example.org/t", c.Plants.Source)
}
