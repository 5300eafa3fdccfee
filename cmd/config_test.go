package cmd

import (
	"testing"

	"github.com/gnames/esdveg/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfigYAML verifies that the password is masked and runtime
// fields are not shown.
func TestConfigYAML(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptDatabasePassword("secret"),
		config.OptHomeDir("/home/user"),
		config.OptDebugDB("debug.sqlite"),
	})

	out, err := configYAML(c)
	require.NoError(t, err)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, passwordMask)
	assert.NotContains(t, out, "/home/user")
	assert.NotContains(t, out, "debug.sqlite")

	var res config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, c.Plants.Source, res.Plants.Source)
	assert.Equal(t, c.Database.Port, res.Database.Port)
	assert.Equal(t, c.JobsNumber, res.JobsNumber)

	assert.Equal(t, "secret", c.Database.Password,
		"original config is not modified")
}
