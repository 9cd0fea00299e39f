package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/meetingtax/meetingtax/pkg/cli/config"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadSeedConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeSeedFile(t, `
threshold_cents = 150000

[[department]]
name = "Engineering"

[[department]]
name = "Sales"

[[role]]
name = "Engineer"

[[rate]]
role = "Engineer"
rate_cents = 15000

[[rate]]
role = "Engineer"
department = "Engineering"
rate_cents = 17500
`)

		cfg, err := config.LoadSeedConfig(path)
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.Departments).Length(2)
		gt.Array(t, cfg.JobRoles).Length(1)
		gt.Array(t, cfg.Rates).Length(2)
		gt.Value(t, cfg.ThresholdCents).Equal(150000)
		gt.Value(t, cfg.Rates[1].Department).Equal("Engineering")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSeedConfig(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})

	t.Run("unparsable toml", func(t *testing.T) {
		path := writeSeedFile(t, "[[department\nname =")
		_, err := config.LoadSeedConfig(path)
		gt.Error(t, err)
	})

	t.Run("duplicate department", func(t *testing.T) {
		path := writeSeedFile(t, `
[[department]]
name = "Engineering"

[[department]]
name = "Engineering"
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrDuplicateEntry)).True()
	})

	t.Run("rate with unknown role", func(t *testing.T) {
		path := writeSeedFile(t, `
[[rate]]
role = "Ghost"
rate_cents = 10000
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("rate with unknown department", func(t *testing.T) {
		path := writeSeedFile(t, `
[[role]]
name = "Engineer"

[[rate]]
role = "Engineer"
department = "Ghost"
rate_cents = 10000
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("non-positive rate", func(t *testing.T) {
		path := writeSeedFile(t, `
[[role]]
name = "Engineer"

[[rate]]
role = "Engineer"
rate_cents = 0
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("nameless entry", func(t *testing.T) {
		path := writeSeedFile(t, `
[[department]]
name = ""
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrMissingName)).True()
	})

	t.Run("duplicate rate key", func(t *testing.T) {
		path := writeSeedFile(t, `
[[role]]
name = "Engineer"

[[rate]]
role = "Engineer"
rate_cents = 10000

[[rate]]
role = "Engineer"
rate_cents = 12000
`)
		_, err := config.LoadSeedConfig(path)
		gt.Bool(t, errors.Is(err, config.ErrDuplicateEntry)).True()
	})
}
