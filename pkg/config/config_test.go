package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bitmath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func Test_Load(t *testing.T) {
	t.Setenv(EnvSystem, "")

	path := writeConfig(t, `
format:
  system: si
  template: "{value:.2f} {unit}"
  plural: true
  output: table
listing:
  filter: "*.iso"
  follow_links: true
  min_size: 4.7 GB
log:
  level: debug
  format: json
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, bitmath.SI, conf.Format.PrefixSystem())
	assert.Equal(t, bitmath.Formatter{Template: "{value:.2f} {unit}", Plural: true}, conf.Format.Formatter())
	assert.Equal(t, "table", conf.Format.Output)
	assert.Equal(t, "*.iso", conf.Listing.Filter)
	assert.True(t, conf.Listing.FollowLinks)
	assert.Equal(t, bitmath.GB, conf.Listing.MinSize.Unit())
	assert.Equal(t, 4.7, conf.Listing.MinSize.Value())
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "json", conf.Log.Format)
}

func Test_Load_Defaults(t *testing.T) {
	t.Setenv(EnvSystem, "")

	conf, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
	assert.Equal(t, bitmath.NIST, conf.Format.PrefixSystem())
	assert.Equal(t, bitmath.DefaultTemplate, conf.Format.Template)
	assert.Equal(t, "text", conf.Format.Output)
	assert.Equal(t, "*", conf.Listing.Filter)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "auto", conf.Log.Format)
}

func Test_Load_DefaultFileIsOptional(t *testing.T) {
	t.Setenv(EnvSystem, "")
	t.Chdir(t.TempDir())

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)

	_, err = Load("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Load_Env(t *testing.T) {
	t.Setenv(EnvSystem, "decimal")

	conf, err := Load(writeConfig(t, "format:\n  system: nist\n"))
	require.NoError(t, err)
	assert.Equal(t, bitmath.SI, conf.Format.PrefixSystem())
}

func Test_Load_Invalid(t *testing.T) {
	t.Setenv(EnvSystem, "")

	for _, contents := range []string{
		"format:\n  system: metric\n",
		"format:\n  template: \"{nope}\"\n",
		"format:\n  output: xml\n",
		"listing:\n  min_size: 10 KB\n",
		"listing:\n  min_size: -1 KiB\n",
		"log:\n  level: loud\n",
		"log:\n  format: xml\n",
		"format: [",
	} {
		_, err := Load(writeConfig(t, contents))
		assert.Error(t, err, contents)
	}
}

func Test_Validate_Overrides(t *testing.T) {
	t.Parallel()

	conf := Default()
	require.NoError(t, conf.Validate())

	conf.Format.Output = "table"
	conf.Format.System = "si"
	require.NoError(t, conf.Validate())
	assert.Equal(t, bitmath.SI, conf.Format.PrefixSystem())

	conf.Format.Template = "{value"
	assert.Error(t, conf.Validate())
}
